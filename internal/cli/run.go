package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/eartrumpet-io/eartrumpet/internal/app"
)

var (
	runLocale  string
	runNoWatch bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the tray",
	Long: `Start the notification-area icon and keep it running until Exit is
chosen from its menu or the process is interrupted.

The locale is taken from --locale, then settings.yaml, then the system.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runLocale, "locale", "", "UI language as a BCP 47 tag (e.g. de-DE)")
	cmd.Flags().BoolVar(&runNoWatch, "no-watch", false, "Do not reload configuration files when they change")
}

func runRun(cmd *cobra.Command, args []string) error {
	err := app.Run(app.Options{
		Locale:  runLocale,
		NoWatch: runNoWatch,
	})
	if errors.Is(err, app.ErrAlreadyRunning) {
		cmd.Println(styleWarning.Render("EarTrumpet is already running."))
		cmd.Println(styleHint.Render("Use `eartrumpet status` to see the running instance."))
	}
	return err
}
