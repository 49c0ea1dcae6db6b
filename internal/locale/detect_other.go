//go:build !windows

package locale

import "os"

// SystemPreferences returns the user's UI languages, most preferred first,
// following the POSIX precedence of LC_ALL, LC_MESSAGES and LANG.
func SystemPreferences() []string {
	var prefs []string
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			prefs = append(prefs, v)
		}
	}
	return prefs
}
