package main

import (
	"fmt"
	"log/slog"

	"github.com/Revanthsudeeep/waterconservation/internal/config"
	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/database"
	"github.com/Revanthsudeeep/waterconservation/internal/harvest"
	"github.com/Revanthsudeeep/waterconservation/internal/seed"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"
)

func rootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "waterconservation",
		Short:        "Water conservation platform API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")

	root.AddCommand(
		serveCommand(&envFile),
		migrateCommand(&envFile),
		calcCommand(),
	)
	return root
}

func serveCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			logger := configLogger(cfg)
			logger.Info("Starting application...", slog.String("env", cfg.Env), slog.String("version", cfg.Version))

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				logger.Error("Errors opening database connection", slog.String("stack", xerrors.Sprint(err)))
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					logger.Error("Errors closing database connection", slog.String("error", err.Error()))
				}
			}()
			logger.Info("Database connection established successfully")

			app, err := newApplication(cmd.Context(), cfg, logger, db)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.weather.Close(); err != nil {
					logger.Error("Errors closing redis connection", slog.String("error", err.Error()))
				}
			}()

			if err := app.serve(); err != nil {
				logger.Error("Error running server", slog.String("stack", xerrors.Sprint(err)))
				return err
			}
			return nil
		},
	}
}

func migrateCommand(envFile *string) *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and optionally load a seed catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			logger := configLogger(cfg)

			ctx := cmd.Context()

			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(ctx, db, logger); err != nil {
				return err
			}
			if seedFile == "" {
				return nil
			}

			catalog, err := seed.LoadFile(seedFile)
			if err != nil {
				return err
			}
			store := core.NewCore(db, logger, databaseutils.NewSQLTemplate(db, cfg.DB.QueryTimeout))
			_, err = seed.Apply(ctx, store, catalog, logger)
			return err
		},
	}
	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML catalog of articles, videos and zones to insert")
	return cmd
}

func calcCommand() *cobra.Command {
	var area, rainfall, coefficient float64

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Estimate harvestable rainwater and yearly savings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, rf, c := harvest.Coerce(area, rainfall, coefficient)
			result := harvest.Calculate(a, rf, c)
			fmt.Fprintf(cmd.OutOrStdout(), "Harvestable water: %s\nAnnual savings: %s\n", result.WaterLabel(), result.SavingsLabel())
			return nil
		},
	}
	cmd.Flags().Float64Var(&area, "area", 0, "catchment area")
	cmd.Flags().Float64Var(&rainfall, "rainfall", 0, "annual rainfall")
	cmd.Flags().Float64Var(&coefficient, "coefficient", float64(harvest.DefaultCoefficient), "runoff coefficient (0.8, 0.6 or 0.4)")
	return cmd
}
