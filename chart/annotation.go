package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/dnldd/breakout/shared"
)

const (
	// DefaultMarkerOffset is the default distance between a pivot marker and its
	// candlestick extreme.
	DefaultMarkerOffset = 1e-3
	// DefaultWindowStart is the default first position of the render window.
	DefaultWindowStart = 7800
	// DefaultWindowEnd is the default end position (exclusive) of the render window.
	DefaultWindowEnd = 8000
)

// Marker represents a pivot marker to be plotted on a chart.
type Marker struct {
	Position int
	Price    float64
	Label    shared.PivotLabel
}

// Breakout represents a flagged structure break.
type Breakout struct {
	Position  int
	Date      time.Time
	Close     float64
	Flag      shared.StructureFlag
	Sentiment shared.Sentiment
	// Session is the market session of the breakout, empty when undated or outside
	// all sessions.
	Session string
	// Trend is the trend of the close relative to the ema overlay.
	Trend shared.Trend
}

// Markers returns the pivot markers of the provided series in position order.
// Pivot lows are placed offset below the low, pivot highs offset above the high.
// A candlestick labeled both yields a low and a high marker.
func Markers(series *shared.Series, labels []shared.PivotLabel, offset float64) []Marker {
	markers := make([]Marker, 0)
	for pos := range min(series.Len(), len(labels)) {
		candle, _ := series.At(pos)
		label := labels[pos]

		if label.IsLow() {
			markers = append(markers, Marker{
				Position: pos,
				Price:    candle.Low - offset,
				Label:    shared.PivotLow,
			})
		}
		if label.IsHigh() {
			markers = append(markers, Marker{
				Position: pos,
				Price:    candle.High + offset,
				Label:    shared.PivotHigh,
			})
		}
	}

	return markers
}

// PointPositions returns the marker price of every position of the provided series,
// NaN where the candlestick is not a pivot or is labeled both.
func PointPositions(series *shared.Series, labels []shared.PivotLabel, offset float64) []float64 {
	points := make([]float64, series.Len())
	for pos := range points {
		points[pos] = math.NaN()
		if pos >= len(labels) {
			continue
		}

		candle, _ := series.At(pos)
		switch labels[pos] {
		case shared.PivotLow:
			points[pos] = candle.Low - offset
		case shared.PivotHigh:
			points[pos] = candle.High + offset
		}
	}

	return points
}

// Window clamps the render window [start, end) to a series of n candlesticks.
func Window(start int, end int, n int) (int, int) {
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	return start, end
}

// Within returns the markers positioned in [start, end).
func Within(markers []Marker, start int, end int) []Marker {
	filtered := make([]Marker, 0, len(markers))
	for idx := range markers {
		if markers[idx].Position >= start && markers[idx].Position < end {
			filtered = append(filtered, markers[idx])
		}
	}

	return filtered
}

// Breakouts lists the flagged positions of the provided series. The trend is
// choppy for every breakout when ema is empty.
func Breakouts(series *shared.Series, flags []shared.StructureFlag, ema []float64) ([]Breakout, error) {
	breakouts := make([]Breakout, 0)
	for pos := range min(series.Len(), len(flags)) {
		if flags[pos] == shared.NoStructure {
			continue
		}

		candle, _ := series.At(pos)
		breakout := Breakout{
			Position:  pos,
			Date:      candle.Date,
			Close:     candle.Close,
			Flag:      flags[pos],
			Sentiment: candle.FetchSentiment(),
		}

		if !candle.Date.IsZero() {
			session, err := shared.SessionAt(candle.Date)
			if err != nil {
				return nil, fmt.Errorf("fetching session at position %d: %w", pos, err)
			}
			breakout.Session = session
		}

		if pos < len(ema) {
			breakout.Trend = shared.CategorizeTrendScore(shared.TrendScore(candle.Close, ema[pos]))
		}

		breakouts = append(breakouts, breakout)
	}

	return breakouts, nil
}
