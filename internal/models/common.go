package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the wire format for all business dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with day granularity. It is exchanged as
// YYYY-MM-DD with no time-of-day and no timezone, so daily reports never
// shift by a day when the server and the shop disagree on timezone.
// Internally it is the UTC midnight of that day.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("fecha inválida %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so gorm stores a SQL date.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether both values are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// AddMonthsClamped advances the date by whole calendar months keeping the
// day-of-month, clamped to the last day of the target month. Jan 31 plus
// one month is Feb 28 (29 in leap years), never Mar 2.
func (d Date) AddMonthsClamped(months int) Date {
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := d.Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

// DateRange is an inclusive calendar-date interval. A nil *DateRange means
// "all time".
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the range, both ends inclusive.
// A nil range contains every date.
func (r *DateRange) Contains(d Date) bool {
	if r == nil {
		return true
	}
	return !d.Before(r.Start) && !d.After(r.End)
}
