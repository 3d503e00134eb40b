// Package trenchmate parses CLI flags and runs the campaign keeper: it
// opens the store, seeds the embedded compendium, and prints a summary
// of every campaign on file.
package trenchmate

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/trench-tools/trenchmate/internal/compendium"
	entrypoint "github.com/trench-tools/trenchmate/internal/platform/cmd"
	"github.com/trench-tools/trenchmate/internal/storage/sqlite"
)

// Config holds trenchmate command configuration.
type Config struct {
	DBPath string `env:"TRENCHMATE_DB_PATH" envDefault:"trenchmate.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the store, seeds reference tables, and writes campaign
// summaries to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTrenchmate, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := compendium.Seed(ctx, store); err != nil {
			return fmt.Errorf("seed compendium: %w", err)
		}
		return printSummaries(ctx, store, out)
	})
}

func printSummaries(ctx context.Context, store *sqlite.Store, out io.Writer) error {
	campaigns, err := store.ListCampaigns(ctx)
	if err != nil {
		return err
	}
	if len(campaigns) == 0 {
		fmt.Fprintln(out, "no campaigns on file")
		return nil
	}
	for _, campaign := range campaigns {
		status := "ready"
		if pending, ok := campaign.PendingPostGame(); ok {
			status = fmt.Sprintf("post-game pending for game %d", pending.GameNumber)
		}
		fmt.Fprintf(out, "%s: game %d, threshold %d, field strength %d, %d ducats, %d glory (%s)\n",
			campaign.ID,
			campaign.CurrentGame,
			campaign.ThresholdValue,
			campaign.FieldStrength,
			campaign.DucatStash,
			campaign.GloryPoints,
			status,
		)
	}
	return nil
}
