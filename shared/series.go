package shared

// Series represents an ordered, position-addressable set of candlesticks.
//
// A series is immutable once constructed, positions are contiguous from zero and
// every retained candlestick has a positive volume.
type Series struct {
	candles []Candlestick
}

// NewSeries initializes a series from the provided candlesticks, discarding
// candlesticks without a positive volume and renumbering positions from zero.
func NewSeries(candles []Candlestick) *Series {
	filtered := make([]Candlestick, 0, len(candles))
	for idx := range candles {
		if !(candles[idx].Volume > 0) {
			continue
		}

		candle := candles[idx]
		candle.Position = len(filtered)
		filtered = append(filtered, candle)
	}

	return &Series{candles: filtered}
}

// Len returns the number of candlesticks in the series.
func (s *Series) Len() int {
	return len(s.candles)
}

// At returns the candlestick at the provided position. The returned candlestick
// must not be modified.
func (s *Series) At(position int) (*Candlestick, bool) {
	if position < 0 || position >= len(s.candles) {
		return nil, false
	}

	return &s.candles[position], true
}

// Closes returns the close prices of the series.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.candles))
	for idx := range s.candles {
		closes[idx] = s.candles[idx].Close
	}

	return closes
}

// Highs returns the high prices of the series.
func (s *Series) Highs() []float64 {
	highs := make([]float64, len(s.candles))
	for idx := range s.candles {
		highs[idx] = s.candles[idx].High
	}

	return highs
}

// Lows returns the low prices of the series.
func (s *Series) Lows() []float64 {
	lows := make([]float64, len(s.candles))
	for idx := range s.candles {
		lows[idx] = s.candles[idx].Low
	}

	return lows
}

// Truncate returns a series of the first n candlesticks.
func (s *Series) Truncate(n int) *Series {
	return s.Slice(0, n)
}

// Slice returns a series of the candlesticks in [start, end), renumbered from zero.
// Out of range bounds are clamped.
func (s *Series) Slice(start int, end int) *Series {
	start = max(start, 0)
	end = min(end, len(s.candles))
	if start >= end {
		return &Series{}
	}

	candles := make([]Candlestick, end-start)
	copy(candles, s.candles[start:end])
	for idx := range candles {
		candles[idx].Position = idx
	}

	return &Series{candles: candles}
}
