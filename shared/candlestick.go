package shared

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Sentiment represents the candlestick sentiment.
type Sentiment int

const (
	Neutral Sentiment = iota
	Bullish
	Bearish
)

// String stringifies the provided sentiment.
func (s Sentiment) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "unknown"
	}
}

// Candlestick represents a unit candlestick for a market.
type Candlestick struct {
	Position int
	Open     float64
	Low      float64
	High     float64
	Close    float64
	Volume   float64
	Date     time.Time

	// Metadata fields.
	Market    string
	Timeframe Timeframe
}

// FetchSentiment returns the provided candlestick's sentiment.
func (c *Candlestick) FetchSentiment() Sentiment {
	sentiment := c.Close - c.Open
	switch {
	case sentiment < 0:
		return Bearish
	case sentiment > 0:
		return Bullish
	default:
		return Neutral
	}
}

// ParseCandlesticks parses candlesticks from the provided json data.
func ParseCandlesticks(data []gjson.Result, market string, timeframe Timeframe) ([]Candlestick, error) {
	candles := make([]Candlestick, 0, len(data))

	for idx := range data {
		entry := data[idx]
		for _, field := range []string{"open", "high", "low", "close", "volume"} {
			value := entry.Get(field)
			if !value.Exists() {
				return nil, fmt.Errorf("candlestick at index %d is missing %s", idx, field)
			}
			if value.Type != gjson.Number {
				return nil, fmt.Errorf("candlestick at index %d has a non-numeric %s: %s", idx, field, value.Raw)
			}
		}

		candle := Candlestick{
			Position:  idx,
			Open:      entry.Get("open").Float(),
			Low:       entry.Get("low").Float(),
			High:      entry.Get("high").Float(),
			Close:     entry.Get("close").Float(),
			Volume:    entry.Get("volume").Float(),
			Market:    market,
			Timeframe: timeframe,
		}

		date := entry.Get("date")
		if date.Exists() && date.String() != "" {
			dt, err := ParseDate(date.String())
			if err != nil {
				return nil, fmt.Errorf("parsing candlestick date: %w", err)
			}

			candle.Date = dt
		}

		candles = append(candles, candle)
	}

	return candles, nil
}
