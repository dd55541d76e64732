package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/tidwall/gjson"
)

func TestFetchSentiment(t *testing.T) {
	tests := []struct {
		name   string
		candle Candlestick
		want   Sentiment
	}{
		{
			name: "neutral candle",
			candle: Candlestick{
				Open:  1.1,
				Close: 1.1,
				High:  1.2,
				Low:   1.0,
			},
			want: Neutral,
		},
		{
			name: "bullish candle",
			candle: Candlestick{
				Open:  1.1,
				Close: 1.15,
				High:  1.2,
				Low:   1.0,
			},
			want: Bullish,
		},
		{
			name: "bearish candle",
			candle: Candlestick{
				Open:  1.15,
				Close: 1.1,
				High:  1.2,
				Low:   1.0,
			},
			want: Bearish,
		},
	}

	for _, test := range tests {
		sentiment := test.candle.FetchSentiment()
		if sentiment != test.want {
			t.Errorf("%s: expected %s sentiment, got %s",
				test.name, test.want.String(), sentiment.String())
		}
	}
}

func TestSentimentString(t *testing.T) {
	assert.Equal(t, Neutral.String(), "neutral")
	assert.Equal(t, Bullish.String(), "bullish")
	assert.Equal(t, Bearish.String(), "bearish")
	assert.Equal(t, Sentiment(999).String(), "unknown")
}

func TestParseCandlesticks(t *testing.T) {
	market := "EURUSD"
	timeframe := OneHour

	// Ensure candlesticks can be parsed from json data.
	data := `[{"open":1.1,"close":1.2,"high":1.25,"low":1.05,"volume":5,"date":"2024-02-04 15:00:00"},
	{"open":1.2,"close":1.1,"high":1.3,"low":1.0,"volume":0}]`
	candles, err := ParseCandlesticks(gjson.Parse(data).Array(), market, timeframe)
	assert.NoError(t, err)
	assert.Equal(t, len(candles), 2)
	assert.Equal(t, candles[0].Position, 0)
	assert.Equal(t, candles[0].Open, 1.1)
	assert.Equal(t, candles[0].Close, 1.2)
	assert.Equal(t, candles[0].High, 1.25)
	assert.Equal(t, candles[0].Low, 1.05)
	assert.Equal(t, candles[0].Volume, float64(5))
	assert.Equal(t, candles[0].Market, market)
	assert.Equal(t, candles[0].Timeframe, timeframe)
	assert.Equal(t, candles[0].Date.Year(), 2024)
	assert.Equal(t, candles[0].Date.Hour(), 15)

	// Ensure a candlestick without a date has a zero date.
	assert.Equal(t, candles[1].Position, 1)
	assert.True(t, candles[1].Date.IsZero())

	// Ensure parsing fails on a malformed date.
	data = `[{"open":1.1,"close":1.2,"high":1.25,"low":1.05,"volume":5,"date":"yesterday"}]`
	_, err = ParseCandlesticks(gjson.Parse(data).Array(), market, timeframe)
	assert.Error(t, err)

	// Ensure alternate date layouts are accepted.
	data = `[{"open":1.1,"close":1.2,"high":1.25,"low":1.05,"volume":5,"date":"04.02.2024 15:00:00.000"},
	{"open":1.1,"close":1.2,"high":1.25,"low":1.05,"volume":5,"date":"2024-02-04T16:00:00Z"}]`
	candles, err = ParseCandlesticks(gjson.Parse(data).Array(), market, timeframe)
	assert.NoError(t, err)
	assert.Equal(t, candles[0].Date, time.Date(2024, 2, 4, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, candles[1].Date, time.Date(2024, 2, 4, 16, 0, 0, 0, time.UTC))

	// Ensure parsing fails on non-numeric prices and volumes.
	data = `[{"open":1.1,"close":1.2,"high":1.25,"low":"abc","volume":5}]`
	_, err = ParseCandlesticks(gjson.Parse(data).Array(), market, timeframe)
	assert.Error(t, err)
	data = `[{"open":1.1,"close":1.2,"high":1.25,"low":1.05,"volume":"many"}]`
	_, err = ParseCandlesticks(gjson.Parse(data).Array(), market, timeframe)
	assert.Error(t, err)

	// Ensure parsing fails when a price field is missing.
	data = `[{"open":1.1,"high":1.25,"low":1.05,"volume":5}]`
	_, err = ParseCandlesticks(gjson.Parse(data).Array(), market, timeframe)
	assert.Error(t, err)
}
