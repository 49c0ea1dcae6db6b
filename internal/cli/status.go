package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eartrumpet-io/eartrumpet/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the tray is running",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check running instance: %w", err)
	}

	out := cmd.OutOrStdout()
	if !running {
		fmt.Fprintln(out, styleHint.Render("EarTrumpet is not running."))
		return nil
	}

	fmt.Fprintln(out, styleSuccess.Render("EarTrumpet is running."))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("PID:"), styleValue.Render(fmt.Sprint(info.PID)))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Since:"), styleValue.Render(info.StartedAt.Local().Format(time.DateTime)))
	return nil
}
