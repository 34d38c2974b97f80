package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/coop-atlas/pkg/adapters"
	"github.com/de-tools/coop-atlas/pkg/ingest"
	"github.com/de-tools/coop-atlas/pkg/server"
	"github.com/de-tools/coop-atlas/pkg/services/analysis"
	"github.com/de-tools/coop-atlas/pkg/services/config"
	"github.com/de-tools/coop-atlas/pkg/services/survey"
	"github.com/de-tools/coop-atlas/pkg/store/duckdb"
	duckdbsurvey "github.com/de-tools/coop-atlas/pkg/store/duckdb/survey"
)

var (
	profilesPath string
	configPath   string
	dbPath       string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the cooperative survey analysis server",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	defaultProfiles := filepath.Join(home, ".coopatlas.cfg")

	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", defaultProfiles,
		"Path to the dataset profiles file (INI)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to the analysis config file (optional)")
	rootCmd.Flags().StringVar(&dbPath, "db", "coop-atlas.db",
		"Path to the snapshot database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg := analysis.DefaultConfig()
	if configPath != "" {
		loaded, err := analysis.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load analysis config: %w", err)
		}
		cfg = loaded
	}

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profiles registry: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to create snapshot database: %w", err)
	}

	store, err := duckdbsurvey.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create survey store: %w", err)
	}

	if err := importProfiles(ctx, db, registry, store, cfg, logger); err != nil {
		return err
	}

	datasets := survey.NewExplorer(store)
	analysisExplorer := analysis.NewExplorer(datasets, cfg)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}
	addr := net.JoinHostPort(host, port)

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Datasets: datasets,
			Analysis: analysisExplorer,
		},
	})

	return api.Start()
}

// importProfiles refreshes the snapshot store from every configured
// dataset source before serving. All snapshots land in one transaction:
// a failed source leaves the previous catalog intact.
func importProfiles(
	ctx context.Context,
	db *sql.DB,
	registry config.Registry,
	store duckdbsurvey.Store,
	cfg analysis.Config,
	logger zerolog.Logger,
) error {
	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}
	if len(profiles) == 0 {
		logger.Warn().Msg("no dataset profiles configured; the API will serve an empty catalog")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	ctx = duckdb.WithTransaction(ctx, tx)

	for _, profile := range profiles {
		var table ingest.Table
		switch profile.Format {
		case "xlsx":
			table, err = ingest.ReadXLSX(profile.Path, profile.Sheet)
		default:
			table, err = ingest.ReadCSV(profile.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to read dataset %q: %w", profile.Name, err)
		}

		marker := profile.CityMarker
		if marker == "" {
			marker = cfg.CityMarker
		}
		ds, err := survey.Normalize(table, survey.NormalizerOptions{CityMarker: marker})
		if err != nil {
			return fmt.Errorf("failed to normalize dataset %q: %w", profile.Name, err)
		}

		columns, values := adapters.MapDatasetToStoreValues(ds)
		if err := store.Add(ctx, profile.Name, columns, values); err != nil {
			return fmt.Errorf("failed to store dataset %q: %w", profile.Name, err)
		}

		logger.Info().
			Str("dataset", profile.Name).
			Int("records", len(ds.Records)).
			Int("columns", len(columns)).
			Msg("dataset imported")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit imported datasets: %w", err)
	}
	return nil
}
