package chart

import (
	"math"
	"testing"
	"time"

	"github.com/dnldd/breakout/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/peterldowns/testy/assert"
)

// testSeries returns a five candlestick series with distinct extremes.
func testSeries() *shared.Series {
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	candles := make([]shared.Candlestick, 5)
	for idx := range candles {
		base := 1.1 + float64(idx)*0.01
		candles[idx] = shared.Candlestick{
			Open:   base,
			High:   base + 0.005,
			Low:    base - 0.005,
			Close:  base + 0.002,
			Volume: 10,
			Date:   start.Add(time.Hour * time.Duration(idx)),
		}
	}
	candles[3].Close = candles[3].Open - 0.002

	return shared.NewSeries(candles)
}

func TestMarkers(t *testing.T) {
	series := testSeries()
	labels := []shared.PivotLabel{
		shared.PivotNone,
		shared.PivotLow,
		shared.PivotHigh,
		shared.PivotBoth,
		shared.PivotNone,
	}
	offset := 0.001

	// Ensure markers are offset from the candlestick extremes.
	markers := Markers(series, labels, offset)
	want := []Marker{
		{Position: 1, Price: 1.11 - 0.005 - offset, Label: shared.PivotLow},
		{Position: 2, Price: 1.12 + 0.005 + offset, Label: shared.PivotHigh},
		{Position: 3, Price: 1.13 - 0.005 - offset, Label: shared.PivotLow},
		{Position: 3, Price: 1.13 + 0.005 + offset, Label: shared.PivotHigh},
	}
	if diff := cmp.Diff(want, markers, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}

	// Ensure a series without pivots has no markers.
	markers = Markers(series, make([]shared.PivotLabel, series.Len()), offset)
	assert.Equal(t, len(markers), 0)

	// Ensure markers can be restricted to a window.
	markers = Within(Markers(series, labels, offset), 2, 3)
	assert.Equal(t, len(markers), 1)
	assert.Equal(t, markers[0].Label, shared.PivotHigh)
}

func TestPointPositions(t *testing.T) {
	series := testSeries()
	labels := []shared.PivotLabel{
		shared.PivotNone,
		shared.PivotLow,
		shared.PivotHigh,
		shared.PivotBoth,
		shared.PivotNone,
	}

	// Ensure only single sided pivots get a point position.
	points := PointPositions(series, labels, DefaultMarkerOffset)
	want := []float64{
		math.NaN(),
		1.11 - 0.005 - DefaultMarkerOffset,
		1.12 + 0.005 + DefaultMarkerOffset,
		math.NaN(),
		math.NaN(),
	}
	if diff := cmp.Diff(want, points, cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("point positions mismatch (-want +got):\n%s", diff)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		n         int
		wantStart int
		wantEnd   int
	}{
		{
			name:      "window within range",
			start:     7800,
			end:       8000,
			n:         10000,
			wantStart: 7800,
			wantEnd:   8000,
		},
		{
			name:      "window past the end",
			start:     7800,
			end:       8000,
			n:         7900,
			wantStart: 7800,
			wantEnd:   7900,
		},
		{
			name:      "window beyond the series",
			start:     7800,
			end:       8000,
			n:         500,
			wantStart: 500,
			wantEnd:   500,
		},
		{
			name:      "negative start",
			start:     -5,
			end:       10,
			n:         100,
			wantStart: 0,
			wantEnd:   10,
		},
		{
			name:      "inverted window",
			start:     50,
			end:       10,
			n:         100,
			wantStart: 50,
			wantEnd:   50,
		},
	}

	for _, test := range tests {
		start, end := Window(test.start, test.end, test.n)
		assert.Equal(t, start, test.wantStart)
		assert.Equal(t, end, test.wantEnd)
	}
}

func TestBreakouts(t *testing.T) {
	series := testSeries()
	flags := []shared.StructureFlag{
		shared.NoStructure,
		shared.SupportBreak,
		shared.NoStructure,
		shared.ResistanceBreak,
		shared.NoStructure,
	}
	ema := []float64{math.NaN(), 1.0, 1.13, 1.2, 1.14}

	// Ensure only flagged positions are listed.
	breakouts, err := Breakouts(series, flags, ema)
	assert.NoError(t, err)
	assert.Equal(t, len(breakouts), 2)

	assert.Equal(t, breakouts[0].Position, 1)
	assert.Equal(t, breakouts[0].Flag, shared.SupportBreak)
	assert.Equal(t, breakouts[0].Sentiment, shared.Bullish)
	candle, _ := series.At(1)
	assert.Equal(t, breakouts[0].Close, candle.Close)
	assert.Equal(t, breakouts[0].Date, candle.Date)

	assert.Equal(t, breakouts[1].Position, 3)
	assert.Equal(t, breakouts[1].Flag, shared.ResistanceBreak)
	assert.Equal(t, breakouts[1].Sentiment, shared.Bearish)

	// Ensure breakouts are placed in their market session.
	assert.Equal(t, breakouts[0].Session, shared.London)
	assert.Equal(t, breakouts[1].Session, shared.London)

	// Ensure breakouts carry the trend relative to the ema.
	assert.Equal(t, breakouts[0].Trend, shared.IntenseBullishTrend)
	assert.Equal(t, breakouts[1].Trend, shared.IntenseBearishTrend)

	// Ensure a missing ema leaves the trend choppy.
	breakouts, err = Breakouts(series, flags, nil)
	assert.NoError(t, err)
	assert.Equal(t, breakouts[0].Trend, shared.ChoppyTrend)
}
