package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/exlogs/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n",
				styleBrand.Render("exlogs"),
				styleVersion.Render(buildinfo.Version),
				buildinfo.Codename)
			printKV(out, "Commit", buildinfo.CommitHash)
			printKV(out, "Built", buildinfo.BuildDate)
			printKV(out, "OS/Arch", runtime.GOOS+"/"+runtime.GOARCH)
			printKV(out, "Go", runtime.Version())
		},
	}
}
