package shared

import (
	"fmt"
	"time"

	// Session times are resolved in new york time regardless of the host zoneinfo.
	_ "time/tzdata"
)

const (
	// Session names.
	Asia    = "asia"
	London  = "london"
	NewYork = "newyork"

	// Market session times in new york time (ET).
	AsiaOpen     = "18:00"
	AsiaClose    = "03:00"
	LondonOpen   = "03:00"
	LondonClose  = "11:00"
	NewYorkOpen  = "08:00"
	NewYorkClose = "17:00"

	// SessionTimeLayout is the format layout for session open and close times.
	SessionTimeLayout = "15:04"
	// NewYorkLocation is the location session times are expressed in.
	NewYorkLocation = "America/New_York"
)

// Session represents a market session.
type Session struct {
	Name  string
	Open  time.Time
	Close time.Time
}

// NewSession initializes the named market session opening on the day of the provided
// new york time.
func NewSession(name string, open string, close string, day time.Time) (*Session, error) {
	sessionOpen, err := time.Parse(SessionTimeLayout, open)
	if err != nil {
		return nil, fmt.Errorf("parsing session open: %w", err)
	}

	sessionClose, err := time.Parse(SessionTimeLayout, close)
	if err != nil {
		return nil, fmt.Errorf("parsing session close: %w", err)
	}

	loc := day.Location()
	if loc.String() != NewYorkLocation {
		return nil, fmt.Errorf("expected new york location for provided time, got %v", loc.String())
	}

	sOpen := time.Date(day.Year(), day.Month(), day.Day(), sessionOpen.Hour(), sessionOpen.Minute(), 0, 0, loc)
	sClose := time.Date(day.Year(), day.Month(), day.Day(), sessionClose.Hour(), sessionClose.Minute(), 0, 0, loc)
	if sClose.Before(sOpen) {
		sClose = sClose.Add(time.Hour * 24)
	}

	session := &Session{
		Name:  name,
		Open:  sOpen,
		Close: sClose,
	}

	return session, nil
}

// Contains checks whether the provided time falls within the session.
func (s *Session) Contains(t time.Time) bool {
	return (t.Equal(s.Open) || t.After(s.Open)) && t.Before(s.Close)
}

// SessionAt returns the name of the market session the provided time falls in, or an
// empty string outside all sessions. Overlapping sessions resolve to the one that
// opened first.
func SessionAt(t time.Time) (string, error) {
	loc, err := time.LoadLocation(NewYorkLocation)
	if err != nil {
		return "", fmt.Errorf("loading new york location: %w", err)
	}

	now := t.In(loc)
	yesterday := now.AddDate(0, 0, -1)

	sessions := []struct {
		name  string
		open  string
		close string
		day   time.Time
	}{
		{Asia, AsiaOpen, AsiaClose, yesterday},
		{London, LondonOpen, LondonClose, now},
		{NewYork, NewYorkOpen, NewYorkClose, now},
		{Asia, AsiaOpen, AsiaClose, now},
	}

	for _, sess := range sessions {
		session, err := NewSession(sess.name, sess.open, sess.close, sess.day)
		if err != nil {
			return "", fmt.Errorf("creating %s session: %w", sess.name, err)
		}

		if session.Contains(now) {
			return session.Name, nil
		}
	}

	return "", nil
}
