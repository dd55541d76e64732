package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dnldd/breakout/chart"
	"github.com/dnldd/breakout/priceaction"
	"github.com/dnldd/breakout/service"
	"github.com/dnldd/breakout/shared"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

// analysisConfig maps the provided config to the analysis service config.
func analysisConfig(cfg *Config) (*service.AnalysisConfig, error) {
	timeframe, err := shared.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		return nil, err
	}

	return &service.AnalysisConfig{
		DataFilepath: cfg.DataFilepath,
		Market:       cfg.Market,
		Timeframe:    timeframe,
		MaxBars:      cfg.MaxBars,
		EMAPeriod:    cfg.EMAPeriod,
		Detector: priceaction.Config{
			PivotWindow:     cfg.PivotWindow,
			Backcandles:     cfg.Backcandles,
			StructureWindow: cfg.StructureWindow,
			ZoneWidth:       cfg.ZoneWidth,
			Workers:         cfg.Workers,
		},
		MarkerOffset: cfg.MarkerOffset,
		ChartStart:   cfg.ChartStart,
		ChartEnd:     cfg.ChartEnd,
	}, nil
}

// writeReport writes the annotation csv of the provided report to the provided filepath.
func writeReport(report *service.Report, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	err = chart.WriteCSV(f, report.Series, report.EMA, report.Labels, report.Flags, report.PointPositions)
	if err != nil {
		return fmt.Errorf("writing annotations: %w", err)
	}

	return nil
}

// run executes a breakout analysis using the provided config, writing the annotation csv
// when an output filepath is set.
func run(cfg *Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleTermination(ctx, cancel)

	analysisCfg, err := analysisConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating analysis config: %w", err)
	}

	analysis, err := service.NewAnalysis(analysisCfg)
	if err != nil {
		return fmt.Errorf("creating analysis service: %w", err)
	}

	report, err := analysis.Run(ctx)
	if err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}

	if cfg.OutputFilepath != "" {
		err = writeReport(report, cfg.OutputFilepath)
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		log.Info().Msgf("annotations for run %s written to %s", report.RunID, cfg.OutputFilepath)
	}

	return nil
}

func main() {
	cfg := defaultConfig()
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Error().Err(err).Msg("loading config")
		os.Exit(1)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	err = run(&cfg)
	if err != nil {
		log.Error().Err(err).Msg("breakout analysis failed")
		os.Exit(1)
	}
}
