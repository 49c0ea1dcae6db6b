package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eartrumpet-io/eartrumpet/internal/config"
	"github.com/eartrumpet-io/eartrumpet/internal/locale"
	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

func setupProfile(t *testing.T) {
	t.Helper()
	t.Setenv(config.HomeEnv, t.TempDir())

	p := models.NewDeviceProfile()
	p.Default = "spk"
	p.Devices = []models.DeviceEntry{
		{ID: "spk", Name: "Speakers", Volume: 0.5},
		{ID: "hp", Name: "Headphones", Volume: 0.2, Muted: true},
	}
	if err := config.SaveDeviceProfile(p); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestApplySetting(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(*models.Settings) bool
	}{
		{"locale", "de-DE", false, func(s *models.Settings) bool { return s.Locale == "de-DE" }},
		{"locale", "", false, func(s *models.Settings) bool { return s.Locale == "" }},
		{"locale", "not a tag!", true, nil},
		{"feedback_url", "https://example.com", false, func(s *models.Settings) bool { return s.FeedbackURL == "https://example.com" }},
		{"feedback_url", "", false, func(s *models.Settings) bool { return s.FeedbackURL == models.DefaultFeedbackURL }},
		{"log.file", "false", false, func(s *models.Settings) bool { return !s.Log.File }},
		{"log.verbose", "true", false, func(s *models.Settings) bool { return s.Log.Verbose }},
		{"log.verbose", "maybe", true, nil},
		{"volume", "1", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := models.NewSettings()
			err := applySetting(s, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applySetting() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(s) {
				t.Errorf("applySetting(%s, %q) produced %+v", tt.key, tt.value, s)
			}
		})
	}
}

func TestPrintDevices(t *testing.T) {
	p := models.NewDeviceProfile()
	p.Default = "spk"
	p.Devices = []models.DeviceEntry{
		{ID: "spk", Name: "Speakers", Volume: 0.5},
		{ID: "hp", Name: "Headphones", Volume: 0.2, Muted: true},
	}

	var out bytes.Buffer
	printDevices(&out, p, locale.Resolve("en"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "Headphones") || !strings.Contains(lines[0], "muted") {
		t.Errorf("first line = %q, want muted Headphones", lines[0])
	}
	if !strings.Contains(lines[1], "Speakers") || !strings.Contains(lines[1], "*") || !strings.Contains(lines[1], "50%") {
		t.Errorf("second line = %q, want default Speakers at 50%%", lines[1])
	}
}

func TestPrintDevicesEmpty(t *testing.T) {
	var out bytes.Buffer
	printDevices(&out, models.NewDeviceProfile(), locale.Resolve("en"))
	if !strings.Contains(out.String(), "No playback devices") {
		t.Errorf("output = %q", out.String())
	}
}

func TestUseCommand(t *testing.T) {
	setupProfile(t)

	if _, err := execute(t, "use", "HEADPHONES"); err != nil {
		t.Fatalf("use: %v", err)
	}
	p, err := config.LoadDeviceProfile()
	if err != nil {
		t.Fatal(err)
	}
	if p.Default != "hp" {
		t.Errorf("default = %q, want hp", p.Default)
	}

	if _, err := execute(t, "use", "nope"); err == nil {
		t.Error("use with unknown device succeeded")
	}
}

func TestMuteCommand(t *testing.T) {
	setupProfile(t)

	steps := []struct {
		args []string
		want bool
	}{
		{[]string{"mute"}, true},
		{[]string{"mute"}, false},
		{[]string{"mute", "on"}, true},
		{[]string{"mute", "on"}, true},
		{[]string{"mute", "off"}, false},
	}
	for _, step := range steps {
		if _, err := execute(t, step.args...); err != nil {
			t.Fatalf("%v: %v", step.args, err)
		}
		p, err := config.LoadDeviceProfile()
		if err != nil {
			t.Fatal(err)
		}
		if got := p.DefaultEntry().Muted; got != step.want {
			t.Fatalf("%v: muted = %v, want %v", step.args, got, step.want)
		}
	}

	if _, err := execute(t, "mute", "loud"); err == nil {
		t.Error("mute with invalid argument succeeded")
	}
}

func TestSettingsSetCommand(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	out, err := execute(t, "settings", "set", "locale", "fr")
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	if !strings.Contains(out, "Restart") {
		t.Errorf("output = %q, want restart hint", out)
	}

	s, err := config.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Locale != "fr" {
		t.Errorf("locale = %q, want fr", s.Locale)
	}
}

func TestStatusNotRunning(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	out, err := execute(t, "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "not running") {
		t.Errorf("output = %q", out)
	}
}
