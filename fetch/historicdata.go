package fetch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dnldd/breakout/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// DefaultMaxBars is the default number of candlesticks retained after filtering.
	DefaultMaxBars = 10000
)

var (
	// priceColumns are the required columns of delimited historic data.
	priceColumns = []string{"open", "high", "low", "close", "volume"}
	// timeColumns are the accepted names of the optional time column.
	timeColumns = []string{"date", "time", "timestamp", "gmt time", "datetime"}
)

// HistoricDataConfig represents the historic data source configuration.
type HistoricDataConfig struct {
	// Market represents the historic data market.
	Market string
	// Timeframe represents the timeframe for the historic data.
	Timeframe shared.Timeframe
	// FilePath is the filepath to the historic market data.
	FilePath string
	// MaxBars is the number of candlesticks retained after discarding candlesticks
	// without volume. Zero retains all candlesticks.
	MaxBars int
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *HistoricDataConfig) Validate() error {
	var errs error

	if cfg.FilePath == "" {
		errs = errors.Join(errs, fmt.Errorf("no file path provided for historic data"))
	}
	if cfg.MaxBars < 0 {
		errs = errors.Join(errs, fmt.Errorf("max bars cannot be negative, got %d", cfg.MaxBars))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("no logger provided for historic data"))
	}

	return errs
}

// HistoricData represents historic market data.
type HistoricData struct {
	cfg    *HistoricDataConfig
	series *shared.Series
}

// loadHistoricData loads the historic data entries from the provided json file path.
func loadHistoricData(filepath string) ([]gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading historic data from file with path '%s': %w", filepath, err)
	}

	if !gjson.ValidBytes(readb) {
		return nil, fmt.Errorf("historic data at '%s' is not valid json", filepath)
	}

	b := gjson.ParseBytes(readb).Array()

	return b, nil
}

// parseDelimited parses candlesticks from delimited historic data with a header row.
func parseDelimited(r io.Reader, market string, timeframe shared.Timeframe) ([]shared.Candlestick, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = idx
	}

	for _, name := range priceColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("header is missing the %s column", name)
		}
	}

	timeColumn := -1
	for _, name := range timeColumns {
		if idx, ok := columns[name]; ok {
			timeColumn = idx
			break
		}
	}

	candles := make([]shared.Candlestick, 0)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		var prices [5]float64
		for idx, name := range priceColumns {
			value := strings.TrimSpace(record[columns[name]])
			prices[idx], err = strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s at row %d: %w", name, row, err)
			}
		}

		candle := shared.Candlestick{
			Position:  len(candles),
			Open:      prices[0],
			High:      prices[1],
			Low:       prices[2],
			Close:     prices[3],
			Volume:    prices[4],
			Market:    market,
			Timeframe: timeframe,
		}

		if timeColumn >= 0 {
			value := strings.TrimSpace(record[timeColumn])
			if value != "" {
				candle.Date, err = shared.ParseDate(value)
				if err != nil {
					return nil, fmt.Errorf("parsing time at row %d: %w", row, err)
				}
			}
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

// loadCandlesticks loads candlesticks from the provided file path. Files with a
// .json extension are parsed as json, everything else as delimited text.
func loadCandlesticks(path string, market string, timeframe shared.Timeframe) ([]shared.Candlestick, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		b, err := loadHistoricData(path)
		if err != nil {
			return nil, fmt.Errorf("loading historic data: %w", err)
		}

		candles, err := shared.ParseCandlesticks(b, market, timeframe)
		if err != nil {
			return nil, fmt.Errorf("parsing candlesticks: %w", err)
		}

		return candles, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening historic data file with path '%s': %w", path, err)
	}
	defer f.Close()

	candles, err := parseDelimited(f, market, timeframe)
	if err != nil {
		return nil, fmt.Errorf("parsing candlesticks: %w", err)
	}

	return candles, nil
}

// NewHistoricData initializes a new historic data source.
func NewHistoricData(cfg *HistoricDataConfig) (*HistoricData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating historic data config: %w", err)
	}

	candles, err := loadCandlesticks(cfg.FilePath, cfg.Market, cfg.Timeframe)
	if err != nil {
		return nil, err
	}

	series := shared.NewSeries(candles)
	dropped := len(candles) - series.Len()
	if cfg.MaxBars > 0 {
		series = series.Truncate(cfg.MaxBars)
	}

	logger := cfg.Logger.With().Str("market", cfg.Market).Str("timeframe", cfg.Timeframe.String()).Logger()
	logger.Info().Msgf("loaded %d candlesticks from %s, dropped %d without volume, retained %d",
		len(candles), cfg.FilePath, dropped, series.Len())

	if series.Len() > 0 {
		first, _ := series.At(0)
		last, _ := series.At(series.Len() - 1)
		if !first.Date.IsZero() && !last.Date.IsZero() {
			logger.Info().Msgf("historic data covers %.2f hours, from %s, to %s",
				last.Date.Sub(first.Date).Hours(), first.Date.Format(time.RFC1123), last.Date.Format(time.RFC1123))
		}
	}

	historicData := HistoricData{
		cfg:    cfg,
		series: series,
	}

	return &historicData, nil
}

// Series returns the loaded series.
func (h *HistoricData) Series() *shared.Series {
	return h.series
}
