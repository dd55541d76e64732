package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/breakout/chart"
	"github.com/dnldd/breakout/fetch"
	"github.com/dnldd/breakout/indicator"
	"github.com/dnldd/breakout/priceaction"
	"github.com/dnldd/breakout/shared"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// AnalysisConfig represents the configuration struct for the breakout analysis service.
type AnalysisConfig struct {
	// DataFilepath is the filepath to the historic market data.
	DataFilepath string
	// Market is the analysed market.
	Market string
	// Timeframe is the timeframe of the historic market data.
	Timeframe shared.Timeframe
	// MaxBars is the number of candlesticks analysed. Zero analyses all candlesticks.
	MaxBars int
	// EMAPeriod is the period of the exponential moving average overlay.
	EMAPeriod int
	// Detector is the pivot and structure detection configuration.
	Detector priceaction.Config
	// MarkerOffset is the distance between pivot markers and candlestick extremes.
	MarkerOffset float64
	// ChartStart is the first position of the render window.
	ChartStart int
	// ChartEnd is the end position (exclusive) of the render window.
	ChartEnd int
}

// Validate asserts the config sane inputs.
func (cfg *AnalysisConfig) Validate() error {
	var errs error

	if cfg.DataFilepath == "" {
		errs = errors.Join(errs, fmt.Errorf("data filepath cannot be an empty string"))
	}
	if cfg.Market == "" {
		errs = errors.Join(errs, fmt.Errorf("market cannot be an empty string"))
	}
	if cfg.MaxBars < 0 {
		errs = errors.Join(errs, fmt.Errorf("max bars cannot be negative, got %d", cfg.MaxBars))
	}
	if cfg.EMAPeriod < 1 {
		errs = errors.Join(errs, fmt.Errorf("ema period must be positive, got %d", cfg.EMAPeriod))
	}
	if err := cfg.Detector.Validate(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("invalid detector config: %w", err))
	}
	if cfg.MarkerOffset < 0 {
		errs = errors.Join(errs, fmt.Errorf("marker offset cannot be negative, got %f", cfg.MarkerOffset))
	}
	if cfg.ChartStart < 0 {
		errs = errors.Join(errs, fmt.Errorf("chart start cannot be negative, got %d", cfg.ChartStart))
	}
	if cfg.ChartEnd < cfg.ChartStart {
		errs = errors.Join(errs, fmt.Errorf("chart end (%d) cannot precede chart start (%d)",
			cfg.ChartEnd, cfg.ChartStart))
	}

	return errs
}

// Report represents the outcome of an analysis run.
type Report struct {
	RunID     uuid.UUID
	Market    string
	Timeframe shared.Timeframe
	Series    *shared.Series
	// EMA is empty when the series is shorter than the ema period.
	EMA            []float64
	Labels         []shared.PivotLabel
	Flags          []shared.StructureFlag
	PointPositions []float64
	// Markers are restricted to the render window [ChartStart, ChartEnd).
	Markers    []chart.Marker
	ChartStart int
	ChartEnd   int
	Breakouts  []chart.Breakout

	PivotHighs       int64
	PivotLows        int64
	SupportBreaks    int64
	ResistanceBreaks int64
}

// Analysis represents a breakout analysis service.
type Analysis struct {
	cfg          *AnalysisConfig
	historicData *fetch.HistoricData
	logger       *zerolog.Logger
}

// NewAnalysis initializes a new breakout analysis service.
func NewAnalysis(cfg *AnalysisConfig) (*Analysis, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "breakout").Logger()

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating analysis config: %w", err)
	}

	logger.Debug().Msgf("analysis config: %s", spew.Sdump(cfg))

	historicDataLogger := logger.With().Str("component", "historicdata").Logger()
	historicData, err := fetch.NewHistoricData(&fetch.HistoricDataConfig{
		Market:    cfg.Market,
		Timeframe: cfg.Timeframe,
		FilePath:  cfg.DataFilepath,
		MaxBars:   cfg.MaxBars,
		Logger:    &historicDataLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating historic data: %w", err)
	}

	service := &Analysis{
		cfg:          cfg,
		historicData: historicData,
		logger:       &logger,
	}

	return service, nil
}

// Run classifies pivots and flags structure breaks over the loaded series.
func (a *Analysis) Run(ctx context.Context) (*Report, error) {
	runID := uuid.New()
	logger := a.logger.With().Str("run", runID.String()).Logger()

	series := a.historicData.Series()
	if series.Len() == 0 {
		return nil, fmt.Errorf("no candlesticks to analyse for %s", a.cfg.Market)
	}

	ema, err := indicator.EMA(series, a.cfg.EMAPeriod)
	if err != nil {
		logger.Warn().Err(err).Msg("skipping ema overlay")
		ema = nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	var tally priceaction.Tally
	detector := &a.cfg.Detector

	labels, err := priceaction.ClassifyAllParallel(ctx, series, detector.PivotWindow, detector.Workers, &tally)
	if err != nil {
		return nil, fmt.Errorf("classifying pivots: %w", err)
	}

	logger.Info().Msgf("classified %d candlesticks: %d pivot highs, %d pivot lows",
		series.Len(), tally.PivotHighs.Load(), tally.PivotLows.Load())

	flags, err := priceaction.DetectAllParallel(ctx, series, labels, detector, &tally)
	if err != nil {
		return nil, fmt.Errorf("detecting structure: %w", err)
	}

	start, end := chart.Window(a.cfg.ChartStart, a.cfg.ChartEnd, series.Len())
	markers := chart.Markers(series, labels, a.cfg.MarkerOffset)
	breakouts, err := chart.Breakouts(series, flags, ema)
	if err != nil {
		return nil, fmt.Errorf("listing breakouts: %w", err)
	}

	for idx := range breakouts {
		breakout := breakouts[idx]
		logger.Info().
			Int("position", breakout.Position).
			Time("date", breakout.Date).
			Float64("close", breakout.Close).
			Str("sentiment", breakout.Sentiment.String()).
			Str("session", breakout.Session).
			Str("trend", breakout.Trend.String()).
			Msg(breakout.Flag.String())
	}

	logger.Info().Msgf("%s analysis done: %d support breaks, %d resistance breaks",
		a.cfg.Market, tally.SupportBreaks.Load(), tally.ResistanceBreaks.Load())

	report := &Report{
		RunID:            runID,
		Market:           a.cfg.Market,
		Timeframe:        a.cfg.Timeframe,
		Series:           series,
		EMA:              ema,
		Labels:           labels,
		Flags:            flags,
		PointPositions:   chart.PointPositions(series, labels, a.cfg.MarkerOffset),
		Markers:          chart.Within(markers, start, end),
		ChartStart:       start,
		ChartEnd:         end,
		Breakouts:        breakouts,
		PivotHighs:       tally.PivotHighs.Load(),
		PivotLows:        tally.PivotLows.Load(),
		SupportBreaks:    tally.SupportBreaks.Load(),
		ResistanceBreaks: tally.ResistanceBreaks.Load(),
	}

	return report, nil
}
