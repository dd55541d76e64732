package priceaction

import (
	"math"

	"github.com/dnldd/breakout/shared"
)

// FindZone returns the zone formed by the last three pivots of the provided kind in
// [start, end), when all of them lie within zoneWidth of their mean.
//
// Pivot highs form resistance zones, pivot lows form support zones.
func FindZone(series *shared.Series, labels []shared.PivotLabel, start int, end int, kind shared.LevelKind, zoneWidth float64) (*shared.Zone, bool) {
	start = max(start, 0)
	end = min(end, series.Len(), len(labels))

	zone := &shared.Zone{Kind: kind}
	found := 0
	for pos := end - 1; pos >= start && found < shared.ZoneSize; pos-- {
		candle, _ := series.At(pos)

		var price float64
		switch {
		case kind == shared.Resistance && labels[pos].IsHigh():
			price = candle.High
		case kind == shared.Support && labels[pos].IsLow():
			price = candle.Low
		default:
			continue
		}

		// Pivots are collected most recent first, store them in position order.
		slot := shared.ZoneSize - 1 - found
		zone.Positions[slot] = pos
		zone.Prices[slot] = price
		found++
	}

	if found < shared.ZoneSize {
		return nil, false
	}

	var sum float64
	for idx := range zone.Prices {
		sum += zone.Prices[idx]
	}
	zone.Mean = sum / shared.ZoneSize

	for idx := range zone.Prices {
		if math.Abs(zone.Prices[idx]-zone.Mean) > zoneWidth {
			return nil, false
		}
	}

	return zone, true
}

// DetectStructure checks whether the close at the provided position breaks a support or
// resistance zone formed by the last three pivots in the lookback range
// [position-backcandles-window, position-window).
//
// The window must exceed the pivot window used to produce the labels. Pivots closer
// to the position than that were classified using candlesticks at or after it, which
// leaks future data into the decision. This is not checked here.
//
// When both a support and a resistance break register, the resistance break is
// reported.
func DetectStructure(series *shared.Series, labels []shared.PivotLabel, position int, backcandles int, window int, zoneWidth float64) shared.StructureFlag {
	if len(labels) != series.Len() {
		return shared.NoStructure
	}
	if position <= backcandles+window || position+window+1 >= series.Len() {
		return shared.NoStructure
	}

	candle, _ := series.At(position)
	start := position - backcandles - window
	end := position - window
	threshold := zoneWidth * 2

	flag := shared.NoStructure

	support, ok := FindZone(series, labels, start, end, shared.Support, zoneWidth)
	if ok && support.IsBrokenBy(candle.Close, threshold) {
		flag = shared.SupportBreak
	}

	resistance, ok := FindZone(series, labels, start, end, shared.Resistance, zoneWidth)
	if ok && resistance.IsBrokenBy(candle.Close, threshold) {
		flag = shared.ResistanceBreak
	}

	return flag
}

// DetectAll flags every position of the provided series.
func DetectAll(series *shared.Series, labels []shared.PivotLabel, cfg *Config) []shared.StructureFlag {
	flags := make([]shared.StructureFlag, series.Len())
	for pos := range flags {
		flags[pos] = DetectStructure(series, labels, pos, cfg.Backcandles, cfg.StructureWindow, cfg.ZoneWidth)
	}

	return flags
}
