package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/cnlearn/internal/app"
	"github.com/heartmarshall/cnlearn/internal/config"
	"github.com/heartmarshall/cnlearn/internal/domain"
	"github.com/heartmarshall/cnlearn/internal/report"
	"github.com/heartmarshall/cnlearn/pkg/ctxutil"
)

// NewRootCmd creates the root command for cnlearn.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cnlearn",
		Short: "Chinese dictionary lookup for learners",
		Long: `cnlearn segments Chinese text into words and looks each of them up in a
local dictionary built from CC-CEDICT and a character decomposition dataset.

Multi-character words are broken down into their component characters,
matched against each syllable of the word's reading.

The dictionary lives in SQLite under the XDG data directory by default.
Set store.backend to "postgres" in the config file to use PostgreSQL.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(ctxutil.WithCommand(cmd.Context(), cmd.Name()))
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to the YAML config file (default: $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewCharCmd())
	cmd.AddCommand(NewPinyinCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the app config, applying the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openApp loads the config, sets up logging on stderr and opens the store.
// The caller closes the returned App.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())

	a, err := app.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return a, nil
}

// addFormatFlag registers the output flags shared by the read commands.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "markdown", "Output format: markdown or json")
	cmd.Flags().String("pinyin-style", string(domain.PinyinAccent), "Pinyin shown in Markdown output: accent, num or clean")
}

// newWriter builds the report writer selected by the output flags.
func newWriter(cmd *cobra.Command) (report.Writer, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	styleFlag, err := cmd.Flags().GetString("pinyin-style")
	if err != nil {
		return nil, err
	}
	style, err := domain.ParsePinyinStyle(styleFlag)
	if err != nil {
		return nil, err
	}
	return report.NewWriter(report.Format(format), cmd.OutOrStdout(), style)
}
