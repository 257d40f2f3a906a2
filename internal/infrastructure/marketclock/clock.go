package marketclock

import (
	"fmt"
	"time"
)

// Calendar answers "is the exchange trading right now": weekdays between
// the session open and close in the exchange's own timezone.
type Calendar struct {
	loc       *time.Location
	openMins  int // minutes after midnight, e.g. 9*60+30
	closeMins int
}

// New builds a calendar for the given IANA timezone and "HH:MM" session
// bounds.
func New(timezone, open, close string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("market timezone: %w", err)
	}
	openMins, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("market open %q: %w", open, err)
	}
	closeMins, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("market close %q: %w", close, err)
	}
	if closeMins <= openMins {
		return nil, fmt.Errorf("market close %q not after open %q", close, open)
	}
	return &Calendar{loc: loc, openMins: openMins, closeMins: closeMins}, nil
}

// Open reports whether t falls inside the trading session. The close is
// exclusive: 16:00 sharp counts as closed.
func (c *Calendar) Open(t time.Time) bool {
	local := t.In(c.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	mins := local.Hour()*60 + local.Minute()
	return mins >= c.openMins && mins < c.closeMins
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
