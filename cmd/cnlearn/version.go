package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/cnlearn/internal/app"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of cnlearn.`,
		Run: func(cmd *cobra.Command, _ []string) {
			b := app.Build()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cnlearn version %s\n", b.Version)
			fmt.Fprintf(out, "  commit: %s\n", b.Commit)
			fmt.Fprintf(out, "  built:  %s\n", b.BuildTime)
			fmt.Fprintf(out, "  go:     %s\n", b.GoVersion)
		},
	}
}
