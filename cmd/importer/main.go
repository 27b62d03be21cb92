// Command importer ingests event workbooks: inspect structure, validate
// against the template contract, preview the merged attendee list, commit
// to the store, and run phone-number maintenance.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/config"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/country"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/etl"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/logging"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the wired collaborators shared by all subcommands.
type app struct {
	dataDir string

	cfg      *config.Config
	files    *store.FileStore
	pipeline *etl.Pipeline
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "importer",
		Short:         "Event workbook ingestion and identity resolution",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data", "data", "data directory for the JSON file store")

	root.AddCommand(
		newInspectCmd(a),
		newValidateCmd(a),
		newPreviewCmd(a),
		newCommitCmd(a),
		newPhonesCmd(a),
		newResetCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	// Load .env if present (Overload overwrites existing env vars).
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file")
	}

	// The file store needs no connection string; default it to the data
	// directory so the required check still guards server deployments.
	if os.Getenv("STORE_URL") == "" && os.Getenv("DB_URL") == "" {
		os.Setenv("STORE_URL", a.dataDir)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	files, err := store.OpenFileStore(a.dataDir)
	if err != nil {
		return err
	}
	a.files = files

	ctx := cmd.Context()
	if err := files.SeedCountries(ctx, country.Names()); err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}

	a.pipeline = etl.NewPipeline(etl.Deps{
		Countries:          files.Countries(),
		Participants:       files.Participants(),
		Events:             files.Events(),
		Snapshots:          files.Snapshots(),
		RequireCrossRoster: cfg.Import.RequireCrossRoster,
	})
	return nil
}
