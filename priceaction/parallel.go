package priceaction

import (
	"context"
	"sync"

	"github.com/dnldd/breakout/shared"
	"go.uber.org/atomic"
)

const (
	// minChunkSize is the minimum number of positions handled by a worker task.
	minChunkSize = 256
)

// Tally tracks the outcome counts of detection passes.
type Tally struct {
	PivotHighs       atomic.Int64
	PivotLows        atomic.Int64
	SupportBreaks    atomic.Int64
	ResistanceBreaks atomic.Int64
}

// countLabel records the provided pivot label.
func (t *Tally) countLabel(label shared.PivotLabel) {
	if label.IsHigh() {
		t.PivotHighs.Inc()
	}
	if label.IsLow() {
		t.PivotLows.Inc()
	}
}

// countFlag records the provided structure flag.
func (t *Tally) countFlag(flag shared.StructureFlag) {
	switch flag {
	case shared.SupportBreak:
		t.SupportBreaks.Inc()
	case shared.ResistanceBreak:
		t.ResistanceBreaks.Inc()
	}
}

// forEachChunk runs fn over [0, n) split into chunks, with at most workers chunks in flight.
func forEachChunk(ctx context.Context, n int, workers int, fn func(start int, end int)) error {
	if workers < 1 {
		workers = 1
	}

	chunkSize := max((n+workers-1)/workers, minChunkSize)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for start := 0; start < n; start += chunkSize {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}

		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(start int, end int) {
			defer wg.Done()
			fn(start, end)
			<-sem
		}(start, end)
	}

	wg.Wait()

	return ctx.Err()
}

// ClassifyAllParallel labels every position of the provided series using concurrent
// workers. The result is identical to ClassifyAll.
func ClassifyAllParallel(ctx context.Context, series *shared.Series, window int, workers int, tally *Tally) ([]shared.PivotLabel, error) {
	labels := make([]shared.PivotLabel, series.Len())
	err := forEachChunk(ctx, len(labels), workers, func(start int, end int) {
		for pos := start; pos < end; pos++ {
			labels[pos] = Classify(series, pos, window)
			if tally != nil {
				tally.countLabel(labels[pos])
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return labels, nil
}

// DetectAllParallel flags every position of the provided series using concurrent
// workers. The result is identical to DetectAll.
func DetectAllParallel(ctx context.Context, series *shared.Series, labels []shared.PivotLabel, cfg *Config, tally *Tally) ([]shared.StructureFlag, error) {
	flags := make([]shared.StructureFlag, series.Len())
	err := forEachChunk(ctx, len(flags), cfg.Workers, func(start int, end int) {
		for pos := start; pos < end; pos++ {
			flags[pos] = DetectStructure(series, labels, pos, cfg.Backcandles, cfg.StructureWindow, cfg.ZoneWidth)
			if tally != nil {
				tally.countFlag(flags[pos])
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return flags, nil
}
