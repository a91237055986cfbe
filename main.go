package main

import (
	"errors"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"rental-analyzer/config"
	"rental-analyzer/services"
	"rental-analyzer/storage"
	"rental-analyzer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)
	os.Exit(run(cfg, logger, os.Stdout))
}

// run drives one analysis and returns the process exit code.
func run(cfg *config.Config, logger *utils.Logger, out io.Writer) int {
	logger.Info("=== Rental listing analysis starting ===")

	reporter := services.NewReporter(out, cfg.MinPrice, cfg.SpecialSubstring)

	source, err := openSource(cfg, logger)
	if err != nil {
		logger.Error("Failed to open listing source: %v", err)
		reporter.PrintError(sourceName(cfg), err)
		return 1
	}
	defer source.Close()

	aggregator := services.NewPriceAggregator(logger,
		services.WithMinPrice(cfg.MinPrice),
		services.WithSpecialSubstring(cfg.SpecialSubstring),
	)

	listings, err := source.Load()
	if err != nil {
		logger.Debug("Load failed: %v", err)
		reporter.PrintError(source.Name(), err)
		return 1
	}
	logger.Info("Loaded %s listings from %s", humanize.Comma(int64(len(listings))), source.Name())

	summary, statsErr := aggregator.Summarize(listings)

	builder := services.NewPromptBuilder(logger, storage.FileSink(cfg.PromptLogPath))
	prompt := builder.BuildPrompt(listings, cfg.PromptLimit)
	n, err := storage.WritePrompt(cfg.PromptOutputPath, prompt)
	if err != nil {
		logger.Error("Prompt write failed: %v", err)
		return 1
	}
	logger.Debug("Wrote %s to %s", humanize.Bytes(uint64(n)), cfg.PromptOutputPath)

	if statsErr != nil {
		reporter.PrintError(source.Name(), statsErr)
	} else {
		reporter.PrintSummary(source.Name(), summary)
	}
	reporter.PrintPromptWritten(cfg.PromptOutputPath)

	if statsErr != nil && !errors.Is(statsErr, services.ErrNoQualifyingData) {
		return 1
	}
	return 0
}

func openSource(cfg *config.Config, logger *utils.Logger) (storage.ListingSource, error) {
	if cfg.UsePostgres() {
		pg, err := storage.NewPostgresSource(cfg.ListingsDSN, cfg.ListingsTable, cfg.ConnectRetries, logger)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	return storage.NewJSONFileSource(cfg.InputPath), nil
}

func sourceName(cfg *config.Config) string {
	if cfg.UsePostgres() {
		return storage.PostgresSourceName(cfg.ListingsTable)
	}
	return cfg.InputPath
}
