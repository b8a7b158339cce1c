package budget

import (
	"fmt"
	"time"
)

// Date is a calendar date. Aggregations attach no time-of-day meaning to
// transactions, so only year, month and day are kept.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return DateOf(t), nil
}

func (d Date) Time() time.Time    { return d.t }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) String() string     { return d.t.Format(time.DateOnly) }

// MonthKey returns the YYYY-MM key the date falls in.
func (d Date) MonthKey() string {
	return d.t.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts both plain dates and full RFC 3339 timestamps, so
// snapshots written by other tooling still import.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}

	s = s[1 : len(s)-1]

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		*d = DateOf(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}

	*d = DateOf(t)

	return nil
}
