//go:build windows

package locale

import "golang.org/x/sys/windows"

// SystemPreferences returns the user's UI languages, most preferred first.
func SystemPreferences() []string {
	langs, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err != nil {
		return nil
	}
	return langs
}
