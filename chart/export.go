package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dnldd/breakout/shared"
)

var header = []string{
	"position", "date", "open", "high", "low", "close", "volume",
	"ema", "pivot", "pointpos", "structure",
}

// formatFloat formats the provided value, leaving NaN blank.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes one annotated row per position of the provided series. The ema
// column is left blank when ema is empty.
func WriteCSV(w io.Writer, series *shared.Series, ema []float64, labels []shared.PivotLabel, flags []shared.StructureFlag, points []float64) error {
	n := series.Len()
	switch {
	case len(ema) != 0 && len(ema) != n:
		return fmt.Errorf("expected %d ema values, got %d", n, len(ema))
	case len(labels) != n:
		return fmt.Errorf("expected %d pivot labels, got %d", n, len(labels))
	case len(flags) != n:
		return fmt.Errorf("expected %d structure flags, got %d", n, len(flags))
	case len(points) != n:
		return fmt.Errorf("expected %d point positions, got %d", n, len(points))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for pos := range n {
		candle, _ := series.At(pos)

		var date string
		if !candle.Date.IsZero() {
			date = candle.Date.Format(shared.DateLayout)
		}

		ma := math.NaN()
		if len(ema) != 0 {
			ma = ema[pos]
		}

		row := []string{
			strconv.Itoa(pos),
			date,
			formatFloat(candle.Open),
			formatFloat(candle.High),
			formatFloat(candle.Low),
			formatFloat(candle.Close),
			formatFloat(candle.Volume),
			formatFloat(ma),
			labels[pos].String(),
			formatFloat(points[pos]),
			flags[pos].String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", pos, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
