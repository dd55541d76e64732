package priceaction

import (
	"github.com/dnldd/breakout/shared"
)

// Classify labels the candlestick at the provided position as a pivot high, pivot low,
// both or neither, by inspecting the window candlesticks on either side of it.
//
// Candlesticks without a full neighbourhood are never pivots. Equal extremes do not
// disqualify a candidate, so every candlestick of a plateau is labeled.
func Classify(series *shared.Series, position int, window int) shared.PivotLabel {
	if window < 1 || position-window < 0 || position+window >= series.Len() {
		return shared.PivotNone
	}

	candidate, _ := series.At(position)

	pivotHigh := true
	pivotLow := true
	for idx := position - window; idx <= position+window; idx++ {
		candle, _ := series.At(idx)
		if candidate.Low > candle.Low {
			pivotLow = false
		}
		if candidate.High < candle.High {
			pivotHigh = false
		}
		if !pivotHigh && !pivotLow {
			break
		}
	}

	switch {
	case pivotHigh && pivotLow:
		return shared.PivotBoth
	case pivotHigh:
		return shared.PivotHigh
	case pivotLow:
		return shared.PivotLow
	default:
		return shared.PivotNone
	}
}

// ClassifyAll labels every position of the provided series.
func ClassifyAll(series *shared.Series, window int) []shared.PivotLabel {
	labels := make([]shared.PivotLabel, series.Len())
	for pos := range labels {
		labels[pos] = Classify(series, pos, window)
	}

	return labels
}
