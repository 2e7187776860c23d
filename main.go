package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"relocation-estimator/clients/transition"
	"relocation-estimator/config"
	"relocation-estimator/models"
	"relocation-estimator/services"
	"relocation-estimator/storage"
	"relocation-estimator/utils"
)

var (
	inputPath string
	verbose   bool
	noDB      bool
)

var rootCmd = &cobra.Command{
	Use:   "relocation-estimator",
	Short: "Estimate monthly costs and commutes of candidate addresses",
	Long: `Reads a household interview record, computes the monthly housing and
car cost of every candidate address, requests its accessibility map and the
routes to every household destination, then exports the results and prints
a comparison.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "household JSON file (default: HOUSEHOLD_INPUT_PATH)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noDB, "no-db", false, "skip the PostgreSQL export even when enabled")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger := utils.NewLogger()
	logger.SetVerbose(verbose)
	cfg := config.Load()

	if inputPath == "" {
		inputPath = cfg.HouseholdInputPath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("=== Relocation Estimator starting ===")
	logger.Info("Config: input %s | concurrency: %d | address spacing: %dms | routing timeout: %v | rate: %.1f req/s",
		inputPath, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.RoutingTimeout, cfg.RequestsPerSecond)

	household, err := readHousehold(inputPath)
	if err != nil {
		return err
	}
	household = services.NewNormaliser(logger).Normalise(household)

	addresses := household.AddressList()
	if len(addresses) == 0 {
		return fmt.Errorf("household in %s has no addresses to evaluate", inputPath)
	}
	logger.Info("Loaded %d addresses, %d destinations, %d vehicles",
		len(addresses), len(household.Destinations), len(household.Vehicles))

	scenario := cfg.Scenario(config.ScenarioCodeSE)
	if scenario == "" {
		logger.Warn("TR_ROUTING_SCENARIO_SE is not set: accessibility and routing are skipped")
	}

	client := transition.NewClient(transition.Config{
		BaseURL:           cfg.TransitionBaseURL,
		APIToken:          cfg.TransitionAPIToken,
		Scenario:          scenario,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
		DepartureSeconds:  cfg.DepartureSeconds(),
		MaxTravelTime:     time.Duration(cfg.AccessibilityMaxMinutes) * time.Minute,
	})

	evaluator := services.NewEvaluator(
		services.NewCostService(logger),
		services.NewAccessibilityService(scenario, client, client, cfg.RoutingTimeout, logger),
		cfg.MaxConcurrency,
		cfg.RateLimitMs,
		logger,
	)
	if err := evaluator.EvaluateAll(ctx, household); err != nil {
		logger.Error("Some addresses could not be fully evaluated: %v", err)
	}

	if err := writeJSON(cfg.JSONOutputPath, household); err != nil {
		logger.Error("JSON export failed: %v", err)
	} else {
		logger.Info("Evaluated household saved to %s", cfg.JSONOutputPath)
	}

	export(logger, "CSV", addresses, func() (storage.EvaluationWriter, error) {
		return storage.NewCSVWriter(cfg.CSVOutputPath, household.DestinationList())
	})

	if cfg.ShapefileOutputDir != "" {
		export(logger, "Shapefile", addresses, func() (storage.EvaluationWriter, error) {
			return storage.NewShapefileWriter(cfg.ShapefileOutputDir)
		})
	}

	if cfg.PostgresEnabled && !noDB {
		exportPostgres(ctx, logger, cfg, addresses)
	}

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(cmd.OutOrStdout(), reportSvc.Generate(household))
	return nil
}

func readHousehold(path string) (*models.Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read household: %w", err)
	}
	var household models.Household
	if err := json.Unmarshal(data, &household); err != nil {
		return nil, fmt.Errorf("parse household %s: %w", path, err)
	}
	return &household, nil
}

func writeJSON(path string, household *models.Household) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(household, "", "  ")
	if err != nil {
		return fmt.Errorf("encode household: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// export opens a writer, writes every address and closes it. Failures are
// logged; an export never aborts the run.
func export(logger *utils.Logger, name string, addresses []*models.Address, open func() (storage.EvaluationWriter, error)) {
	w, err := open()
	if err != nil {
		logger.Error("%s export: %v", name, err)
		return
	}
	if err := w.Write(addresses); err != nil {
		logger.Error("%s export: %v", name, err)
	}
	if err := w.Close(); err != nil {
		logger.Error("%s export: close: %v", name, err)
		return
	}
	logger.Info("%s export written (%d addresses)", name, len(addresses))
}

func exportPostgres(ctx context.Context, logger *utils.Logger, cfg *config.Config, addresses []*models.Address) {
	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second, Logger: logger}
	pg, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure the database is running, or pass --no-db")
		return
	}
	defer pg.Close()

	if err := pg.Write(addresses); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return
	}

	stored, err := pg.FetchAll(ctx)
	if err != nil {
		logger.Error("Failed to read back evaluations: %v", err)
		return
	}
	logger.Info("PostgreSQL holds %d address evaluations (table: address_evaluations)", len(stored))
}
