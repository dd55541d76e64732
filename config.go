package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/dnldd/breakout/chart"
	"github.com/dnldd/breakout/fetch"
	"github.com/dnldd/breakout/indicator"
	"github.com/dnldd/breakout/priceaction"
	"github.com/dnldd/breakout/shared"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	defaultMarket    = "EURUSD"
	defaultTimeframe = "1H"
	defaultLogLevel  = "info"
)

// Config is the configuration struct for the service.
type Config struct {
	// DataFilepath is the filepath to the historic market data.
	DataFilepath string
	// Market is the analysed market.
	Market string
	// Timeframe is the timeframe of the historic market data.
	Timeframe string
	// MaxBars is the number of candlesticks analysed.
	MaxBars int
	// EMAPeriod is the period of the exponential moving average overlay.
	EMAPeriod int
	// PivotWindow is the pivot neighbourhood half-width.
	PivotWindow int
	// Backcandles is the number of candlesticks inspected for zones.
	Backcandles int
	// StructureWindow is the number of recent candlesticks excluded from the zone lookback.
	StructureWindow int
	// ZoneWidth is the zone tolerance, in price units.
	ZoneWidth float64
	// Workers is the number of concurrent detection workers.
	Workers int
	// MarkerOffset is the distance between pivot markers and candlestick extremes.
	MarkerOffset float64
	// ChartStart is the first position of the render window.
	ChartStart int
	// ChartEnd is the end position (exclusive) of the render window.
	ChartEnd int
	// OutputFilepath is the filepath the annotation csv is written to.
	OutputFilepath string
	// LogLevel is the logging level.
	LogLevel string

	registeredFlags map[string]bool
}

// defaultConfig returns the config defaults, overridden by environment variables and flags.
func defaultConfig() Config {
	detector := priceaction.DefaultConfig()

	return Config{
		Market:          defaultMarket,
		Timeframe:       defaultTimeframe,
		MaxBars:         fetch.DefaultMaxBars,
		EMAPeriod:       indicator.DefaultEMAPeriod,
		PivotWindow:     detector.PivotWindow,
		Backcandles:     detector.Backcandles,
		StructureWindow: detector.StructureWindow,
		ZoneWidth:       detector.ZoneWidth,
		Workers:         detector.Workers,
		MarkerOffset:    chart.DefaultMarkerOffset,
		ChartStart:      chart.DefaultWindowStart,
		ChartEnd:        chart.DefaultWindowEnd,
		LogLevel:        defaultLogLevel,
	}
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.DataFilepath == "" {
		errs = errors.Join(errs, fmt.Errorf("data filepath cannot be an empty string"))
	}
	if cfg.Market == "" {
		errs = errors.Join(errs, fmt.Errorf("market cannot be an empty string"))
	}
	if _, err := shared.ParseTimeframe(cfg.Timeframe); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = errors.Join(errs, fmt.Errorf("invalid log level: %w", err))
	}

	detector := priceaction.Config{
		PivotWindow:     cfg.PivotWindow,
		Backcandles:     cfg.Backcandles,
		StructureWindow: cfg.StructureWindow,
		ZoneWidth:       cfg.ZoneWidth,
		Workers:         cfg.Workers,
	}
	if err := detector.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

// registerFlag registers string, int and float64 command line arguments and tracks them to
// avoid reregistration. Environment variables override the current value as the flag default.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		def := *value.(*string)
		if defValue != "" {
			def = defValue
		}
		flag.StringVar(value.(*string), name, def, usage)
	case reflect.Int:
		def := *value.(*int)
		if defValue != "" {
			parsed, err := strconv.Atoi(defValue)
			if err != nil {
				return fmt.Errorf("%s: parsing int: %w", name, err)
			}
			def = parsed
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Float64:
		def := *value.(*float64)
		if defValue != "" {
			parsed, err := strconv.ParseFloat(defValue, 64)
			if err != nil {
				return fmt.Errorf("%s: parsing float: %w", name, err)
			}
			def = parsed
		}
		flag.Float64Var(value.(*float64), name, def, usage)
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	flags := []struct {
		name  string
		value interface{}
		usage string
	}{
		{"datafilepath", &cfg.DataFilepath, "the historic market data filepath (csv or json)"},
		{"market", &cfg.Market, "the analysed market"},
		{"timeframe", &cfg.Timeframe, "the historic market data timeframe (1H or 5m)"},
		{"maxbars", &cfg.MaxBars, "the number of candlesticks analysed, zero for all"},
		{"emaperiod", &cfg.EMAPeriod, "the ema overlay period"},
		{"pivotwindow", &cfg.PivotWindow, "the pivot neighbourhood half-width"},
		{"backcandles", &cfg.Backcandles, "the number of candlesticks inspected for zones"},
		{"structurewindow", &cfg.StructureWindow, "the number of recent candlesticks excluded from zones"},
		{"zonewidth", &cfg.ZoneWidth, "the zone tolerance in price units"},
		{"workers", &cfg.Workers, "the number of concurrent detection workers"},
		{"markeroffset", &cfg.MarkerOffset, "the pivot marker offset in price units"},
		{"chartstart", &cfg.ChartStart, "the first position of the render window"},
		{"chartend", &cfg.ChartEnd, "the end position of the render window"},
		{"outputfilepath", &cfg.OutputFilepath, "the annotation csv filepath, empty to skip"},
		{"loglevel", &cfg.LogLevel, "the logging level"},
	}

	// Register command line arguments using loaded environment variables as defaults.
	for _, f := range flags {
		err = cfg.registerFlag(f.name, f.value, f.usage)
		if err != nil {
			return err
		}
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
