package shared

import "math"

const (
	minIntenseTrendThreshold = 0.01
	minStrongTrendThreshold  = 0.005
	minMildTrendThreshold    = 0.002
)

// Trend represents the market trend.
type Trend int

const (
	ChoppyTrend Trend = iota
	MildBullishTrend
	MildBearishTrend
	StrongBullishTrend
	StrongBearishTrend
	IntenseBullishTrend
	IntenseBearishTrend
)

// String stringifies the provided trend.
func (t Trend) String() string {
	switch t {
	case ChoppyTrend:
		return "choppy trend"
	case MildBullishTrend:
		return "mild bullish trend"
	case MildBearishTrend:
		return "mild bearish trend"
	case StrongBullishTrend:
		return "strong bullish trend"
	case StrongBearishTrend:
		return "strong bearish trend"
	case IntenseBullishTrend:
		return "intense bullish trend"
	case IntenseBearishTrend:
		return "intense bearish trend"
	default:
		return "unknown trend"
	}
}

// TrendScore returns the relative distance of the provided close from the provided
// moving average. It is zero when the average is unavailable.
func TrendScore(close float64, average float64) float64 {
	if average == 0 || math.IsNaN(average) || math.IsNaN(close) {
		return 0
	}

	return (close - average) / average
}

// CategorizeTrendScore classifies the provided trend score.
func CategorizeTrendScore(trendScore float64) Trend {
	positive := trendScore > 0

	trendScoreAbsolute := math.Abs(trendScore)
	switch {
	case trendScoreAbsolute > minIntenseTrendThreshold:
		if positive {
			return IntenseBullishTrend
		}
		return IntenseBearishTrend
	case trendScoreAbsolute > minStrongTrendThreshold:
		if positive {
			return StrongBullishTrend
		}
		return StrongBearishTrend
	case trendScoreAbsolute > minMildTrendThreshold:
		if positive {
			return MildBullishTrend
		}
		return MildBearishTrend
	default:
		return ChoppyTrend
	}
}
