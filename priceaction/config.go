package priceaction

import (
	"errors"
	"fmt"
)

const (
	// DefaultPivotWindow is the default pivot neighbourhood half-width.
	DefaultPivotWindow = 10
	// DefaultBackcandles is the default number of candles inspected for zones.
	DefaultBackcandles = 60
	// DefaultStructureWindow is the default number of candles excluded from the zone
	// lookback, immediately before the evaluated candle.
	DefaultStructureWindow = 11
	// DefaultZoneWidth is the default zone tolerance, in price units.
	DefaultZoneWidth = 0.001
)

// Config represents the pivot and structure detection configuration.
type Config struct {
	// PivotWindow is the pivot neighbourhood half-width.
	PivotWindow int
	// Backcandles is the number of candles inspected for zones.
	Backcandles int
	// StructureWindow is the number of recent candles excluded from the zone lookback.
	// It must exceed the pivot window to avoid look-ahead bias.
	StructureWindow int
	// ZoneWidth is the maximum deviation of a zone pivot from the zone mean.
	ZoneWidth float64
	// Workers is the number of concurrent workers used for detection passes.
	// A single worker runs passes sequentially.
	Workers int
}

// DefaultConfig returns the default detection configuration.
func DefaultConfig() *Config {
	return &Config{
		PivotWindow:     DefaultPivotWindow,
		Backcandles:     DefaultBackcandles,
		StructureWindow: DefaultStructureWindow,
		ZoneWidth:       DefaultZoneWidth,
		Workers:         1,
	}
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.PivotWindow < 1 {
		errs = errors.Join(errs, fmt.Errorf("pivot window must be positive, got %d", cfg.PivotWindow))
	}
	if cfg.Backcandles < 0 {
		errs = errors.Join(errs, fmt.Errorf("backcandles cannot be negative, got %d", cfg.Backcandles))
	}
	if cfg.StructureWindow <= cfg.PivotWindow {
		errs = errors.Join(errs, fmt.Errorf("structure window (%d) must exceed the pivot window (%d) "+
			"to avoid look-ahead bias", cfg.StructureWindow, cfg.PivotWindow))
	}
	if cfg.ZoneWidth <= 0 {
		errs = errors.Join(errs, fmt.Errorf("zone width must be positive, got %f", cfg.ZoneWidth))
	}
	if cfg.Workers < 0 {
		errs = errors.Join(errs, fmt.Errorf("workers cannot be negative, got %d", cfg.Workers))
	}

	return errs
}

