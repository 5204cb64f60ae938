package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/cnlearn/internal/report"
	"github.com/heartmarshall/cnlearn/internal/segment"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <text...>",
		Short: "Segment Chinese text and look up every word",
		Long: `Lookup splits the given text into words, resolves each of them against
the dictionary and prints the matching records.

Words are listed with their component characters. Tokens with no entry
are reported as unresolved, and the query history shows how often each
token was seen.

Examples:
  # Look up a sentence
  cnlearn lookup 我不好意思

  # Several arguments are joined with a space
  cnlearn lookup 你好 中国

  # Machine-readable output
  cnlearn lookup -f json 学习`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLookupCmd,
	}
	addFormatFlag(cmd)
	return cmd
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	w, err := newWriter(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	defer segment.Teardown()

	engine, err := a.NewEngine(cmd.Context())
	if err != nil {
		return err
	}
	if err := engine.Resolve(cmd.Context(), strings.Join(args, " ")); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	_, err = w.WriteLookup(report.NewLookup(engine))
	return err
}
