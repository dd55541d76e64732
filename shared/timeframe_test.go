package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestTimeframeString(t *testing.T) {
	tests := []struct {
		name      string
		timeframe Timeframe
		want      string
	}{
		{"one hour", OneHour, "1H"},
		{"five minute", FiveMinute, "5m"},
		{"unknown timeframe", Timeframe(999), "unknown"},
	}

	for _, test := range tests {
		str := test.timeframe.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("1H")
	assert.NoError(t, err)
	assert.Equal(t, tf, OneHour)

	tf, err = ParseTimeframe(" 5m ")
	assert.NoError(t, err)
	assert.Equal(t, tf, FiveMinute)

	// Ensure unknown timeframes are rejected.
	_, err = ParseTimeframe("1W")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	values := []string{"2024-01-02 09:30:00", "02.01.2024 09:30:00.000", "2024-01-02T09:30:00Z"}

	// Ensure every accepted layout parses.
	for _, value := range values {
		dt, err := ParseDate(value)
		assert.NoError(t, err)
		assert.Equal(t, dt, want)
	}

	// Ensure unrecognised dates are rejected.
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
}
