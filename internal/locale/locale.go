// Package locale resolves the display strings and layout direction used by
// the tray. A Bundle is resolved once at startup and injected.
package locale

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Strings are the localized texts shown by the tray.
type Strings struct {
	NoDeviceTrayText        string
	ContextMenuNoDevices    string
	FullWindowTitleText     string
	LegacyVolumeMixerText   string
	PlaybackDevicesText     string
	RecordingDevicesText    string
	SoundsControlPanelText  string
	SettingsWindowText      string
	ContextMenuSendFeedback string
	ContextMenuExitTitle    string
}

// Bundle is a resolved locale.
type Bundle struct {
	Strings

	// Tag is the user's preferred language. It drives layout direction and
	// collation even when no translation exists for it.
	Tag language.Tag

	// Translation is the language the Strings are in.
	Translation language.Tag

	// RTL is true when Tag is written right to left.
	RTL bool
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(translations))
	for i, t := range translations {
		tags[i] = t.tag
	}
	return tags
}

// Resolve picks the best translation for the given preferences, most
// preferred first. Unparseable entries are skipped; with no usable
// preference the result is English.
func Resolve(preferred ...string) *Bundle {
	var tags []language.Tag
	for _, p := range preferred {
		p = normalize(p)
		if p == "" {
			continue
		}
		tag, err := language.Parse(p)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}

	_, idx, _ := matcher.Match(tags...)
	return &Bundle{
		Strings:     translations[idx].strings,
		Tag:         tags[0],
		Translation: translations[idx].tag,
		RTL:         IsRTL(tags[0]),
	}
}

// Collator returns a new collator for the bundle's language. Collators are
// not safe for concurrent use.
func (b *Bundle) Collator() *collate.Collator {
	return collate.New(b.Tag)
}

// IsRTL reports whether tag's script is written right to left.
func IsRTL(tag language.Tag) bool {
	script, _ := tag.Script()
	switch script.String() {
	case "Arab", "Hebr", "Syrc", "Thaa", "Nkoo", "Adlm", "Rohg", "Mand", "Samr":
		return true
	}
	return false
}

// normalize turns POSIX locale names ("de_DE.UTF-8@euro") into BCP 47 form.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
