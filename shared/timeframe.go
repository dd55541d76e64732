package shared

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the format layout for parsing dates.
	DateLayout = "2006-01-02 15:04:05"
)

// dateLayouts are the accepted layouts of historic data dates.
var dateLayouts = []string{DateLayout, "02.01.2006 15:04:05.000", time.RFC3339}

// ParseDate parses the provided date using the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		dt, err := time.Parse(layout, value)
		if err == nil {
			return dt, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date format '%s'", value)
}

// Timeframe represents the market data time period.
type Timeframe int

const (
	OneHour Timeframe = iota
	FiveMinute
)

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case OneHour:
		return "1H"
	case FiveMinute:
		return "5m"
	default:
		return "unknown"
	}
}

// ParseTimeframe returns the timeframe denoted by the provided string.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1h", "h1", "1hour":
		return OneHour, nil
	case "5m", "m5", "5min":
		return FiveMinute, nil
	default:
		return OneHour, fmt.Errorf("unknown timeframe provided: %q", s)
	}
}
