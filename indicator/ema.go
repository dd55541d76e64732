package indicator

import (
	"fmt"
	"math"

	"github.com/dnldd/breakout/shared"
	"github.com/markcheno/go-talib"
)

const (
	// DefaultEMAPeriod is the default exponential moving average period.
	DefaultEMAPeriod = 150
)

// EMA computes the exponential moving average of the provided series' closes.
//
// The average is seeded with the simple average of the first period closes, positions
// before the seed are NaN.
func EMA(series *shared.Series, period int) ([]float64, error) {
	if period < 1 {
		return nil, fmt.Errorf("ema period must be positive, got %d", period)
	}
	if series.Len() < period {
		return nil, fmt.Errorf("series is shorter than ema period: %d < %d", series.Len(), period)
	}

	ema := talib.Ema(series.Closes(), period)
	for idx := range period - 1 {
		ema[idx] = math.NaN()
	}

	return ema, nil
}
