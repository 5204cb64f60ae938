package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/cnlearn/internal/app/seeder"
)

var errSeedIncomplete = errors.New("seed completed with errors")

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load CC-CEDICT, character data and word frequencies into the store",
		Long: `Seed parses the source datasets and inserts them into the configured
store. Rows that already exist are skipped, so seeding twice is safe.

Dataset paths come from the seeder config file or from the
SEEDER_CEDICT_PATH, SEEDER_CHARACTER_DATA_PATH and SEEDER_FREQUENCY_PATH
environment variables.

Phases: characters, words.

Examples:
  # Seed everything
  cnlearn seed --seeder-config seeder.yaml

  # Only check that the datasets parse
  cnlearn seed --seeder-config seeder.yaml --dry-run

  # Only the word table
  cnlearn seed --phase words`,
		Args: cobra.NoArgs,
		RunE: runSeedCmd,
	}
	cmd.Flags().String("phase", "", "Comma-separated phases to run (default: all)")
	cmd.Flags().Bool("dry-run", false, "Parse datasets without writing to the store")
	cmd.Flags().String("seeder-config", "", "Path to the seeder YAML config file")
	cmd.Flags().Duration("timeout", 30*time.Minute, "Abort seeding after this long")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	phaseFlag, err := cmd.Flags().GetString("phase")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	seederConfigPath, err := cmd.Flags().GetString("seeder-config")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	seederCfg, err := seeder.LoadConfig(seederConfigPath)
	if err != nil {
		return err
	}
	// CLI flags override config.
	if dryRun {
		seederCfg.DryRun = true
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if !seederCfg.DryRun {
		if _, err := a.Migrate(ctx); err != nil {
			return err
		}
	}

	pipeline := a.NewSeeder(*seederCfg)
	if err := pipeline.Run(ctx, splitPhases(phaseFlag)); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if pipeline.HasErrors() {
		slog.Warn("pipeline completed with errors")
		return errSeedIncomplete
	}

	slog.Info("pipeline completed successfully")
	return nil
}

func splitPhases(flag string) []string {
	if strings.TrimSpace(flag) == "" {
		return nil
	}
	phases := strings.Split(flag, ",")
	for i := range phases {
		phases[i] = strings.TrimSpace(phases[i])
	}
	return phases
}
