// Package app wires the tray together and runs it until exit.
package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/config"
	"github.com/eartrumpet-io/eartrumpet/internal/launcher"
	"github.com/eartrumpet-io/eartrumpet/internal/locale"
	"github.com/eartrumpet-io/eartrumpet/internal/models"
	"github.com/eartrumpet-io/eartrumpet/internal/shell"
	"github.com/eartrumpet-io/eartrumpet/internal/tray"
	"github.com/eartrumpet-io/eartrumpet/internal/viewmodel"
	"github.com/eartrumpet-io/eartrumpet/internal/watcher"
)

// ErrAlreadyRunning is returned when another tray process owns the
// EarTrumpet directory.
var ErrAlreadyRunning = errors.New("eartrumpet is already running")

// Options configures Run. Zero values select the platform defaults.
type Options struct {
	// Locale overrides both settings.yaml and the system languages.
	Locale string

	Shell    shell.Shell
	Launcher launcher.Launcher

	// NoWatch disables reloading configuration files on change.
	NoWatch bool
}

// Run starts the tray and blocks until it exits. On Windows and macOS it
// must be called from the main goroutine.
func Run(opts Options) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logFile, err := config.SetupLogging(&settings.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check running instance: %w", err)
	}
	if running {
		return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, info.PID)
	}
	instance, err := config.ClaimInstance()
	if err != nil {
		return fmt.Errorf("failed to write instance info: %w", err)
	}
	defer func() {
		if err := config.ReleaseInstance(instance); err != nil {
			log.Printf("[app] Failed to remove instance info: %v", err)
		}
	}()

	settingsPath, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	if !config.FileExists(settingsPath) {
		// Give the Settings command something to open.
		if err := config.SaveSettings(settings); err != nil {
			log.Printf("[app] Failed to write default settings: %v", err)
		}
	}

	profile, err := config.LoadDeviceProfile()
	if err != nil {
		return fmt.Errorf("failed to load device profile: %w", err)
	}

	bundle := resolveLocale(opts.Locale, settings.Locale)
	log.Printf("[app] Locale %s (translation %s, rtl=%v)", bundle.Tag, bundle.Translation, bundle.RTL)

	sh := opts.Shell
	if sh == nil {
		sh = shell.New()
	}
	launch := opts.Launcher
	if launch == nil {
		launch = launcher.New()
	}

	manager := audio.NewMemoryManager(profile)
	manager.OnPersist(func(p *models.DeviceProfile) {
		if err := config.SaveDeviceProfile(p); err != nil {
			log.Printf("[app] Failed to save device profile: %v", err)
		}
	})

	vm := viewmodel.New(viewmodel.Options{
		Manager:      manager,
		Launcher:     launch,
		Panels:       launcher.ResolvePanels(settings.Panels),
		SettingsPath: settingsPath,
		FeedbackURL:  settings.FeedbackURL,
		Exit:         sh.Quit,
		Verbose:      settings.Log.Verbose,
	})

	lifecycle := &Lifecycle{}
	lifecycle.OnExit(vm.Close)

	onReady := func() {
		ctrl := tray.New(manager, vm, bundle, sh)
		lifecycle.OnExit(ctrl.Close)

		if inv, ok := sh.(shell.Invalidator); ok {
			cancelDevices := manager.DevicesChanged().Subscribe(inv.Invalidate)
			cancelDefault := manager.DefaultDevice().Changed().Subscribe(inv.Invalidate)
			lifecycle.OnExit(func() {
				cancelDevices()
				cancelDefault()
			})
		}

		if !opts.NoWatch {
			if w := startWatcher(sh, manager, vm, settings.Locale); w != nil {
				lifecycle.OnExit(w.Stop)
			}
		}

		stopSignals := handleSignals(sh)
		lifecycle.OnExit(stopSignals)

		log.Printf("[app] Tray ready with %d device(s)", len(manager.Devices()))
	}

	onExit := func() {
		lifecycle.Exit()
		log.Println("[app] Tray stopped")
	}

	return sh.Run(onReady, onExit)
}

func resolveLocale(override, configured string) *locale.Bundle {
	switch {
	case override != "":
		return locale.Resolve(override)
	case configured != "":
		return locale.Resolve(configured)
	}
	return locale.Resolve(locale.SystemPreferences()...)
}

// startWatcher reloads configuration files when they change on disk.
// Files are read on the watcher goroutine and applied on the UI thread.
func startWatcher(sh shell.Shell, manager *audio.MemoryManager, vm *viewmodel.TrayViewModel, startLocale string) *watcher.Watcher {
	w, err := watcher.New("")
	if err != nil {
		log.Printf("[app] Failed to create watcher: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Printf("[app] Failed to start watcher: %v", err)
		w.Stop()
		return nil
	}

	go func() {
		for {
			var ev watcher.Event
			select {
			case <-w.Done():
				return
			case ev = <-w.Events():
			}

			switch ev.Type {
			case watcher.EventDevicesChanged:
				profile, err := config.LoadDeviceProfile()
				if err != nil {
					log.Printf("[app] Ignoring invalid device profile: %v", err)
					continue
				}
				sh.Post(func() { manager.Apply(profile) })

			case watcher.EventSettingsChanged:
				settings, err := config.LoadSettings()
				if err != nil {
					log.Printf("[app] Ignoring invalid settings: %v", err)
					continue
				}
				if settings.Locale != startLocale {
					log.Printf("[app] Locale changed to %q, restart to apply", settings.Locale)
				}
				panels := launcher.ResolvePanels(settings.Panels)
				sh.Post(func() { vm.Reconfigure(panels, settings.FeedbackURL) })
			}
		}
	}()
	return w
}

// handleSignals quits the tray on SIGINT/SIGTERM. The returned func stops
// listening.
func handleSignals(sh shell.Shell) func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("[app] Received signal %v, shutting down...", sig)
			sh.Post(sh.Quit)
		case <-done:
		}
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(sigCh)
		close(done)
	}
}
