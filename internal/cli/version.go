package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/eartrumpet-io/eartrumpet/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", styleBrand.Render("EarTrumpet"), styleVersion.Render(buildinfo.Version))
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Commit:"), styleValue.Render(buildinfo.CommitHash))
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Built:"), styleValue.Render(buildinfo.BuildDate))
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("OS/Arch:"), styleValue.Render(runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Go:"), styleValue.Render(runtime.Version()))
	},
}
