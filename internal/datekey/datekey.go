// Package datekey provides a calendar date value with no time zone attached.
package datekey

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the on-disk and display form of a Key.
const Layout = "2006-01-02"

// Key is a plain year/month/day date. Month is 1-based.
// Two keys name the same day iff they are equal with ==.
type Key struct {
	Year  int
	Month int
	Day   int
}

// New builds a Key, normalizing out-of-range values the way time.Date does
// (month 13 rolls into the next year, day 0 is the last day of the previous month).
func New(year, month, day int) Key {
	return FromTime(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// FromDay builds a Key from a 0-indexed month.
func FromDay(day, month0, year int) Key {
	return New(year, month0+1, day)
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Key {
	return Key{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns the local calendar date of now.
func Today(now time.Time) Key {
	return FromTime(now.Local())
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Key, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Key{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals; it panics on error.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k == Key{}
}

// String renders k as YYYY-MM-DD.
func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

// Time returns midnight of k in loc (UTC when loc is nil).
func (k Key) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1.
func (k Key) Compare(o Key) int {
	switch {
	case k.Year != o.Year:
		return sign(k.Year - o.Year)
	case k.Month != o.Month:
		return sign(k.Month - o.Month)
	default:
		return sign(k.Day - o.Day)
	}
}

func (k Key) Before(o Key) bool { return k.Compare(o) < 0 }
func (k Key) After(o Key) bool  { return k.Compare(o) > 0 }

// Weekday returns 0 for Sunday through 6 for Saturday.
func (k Key) Weekday() int {
	return int(k.Time(nil).Weekday())
}

// DaysInMonth returns the number of days in k's month.
func (k Key) DaysInMonth() int {
	return time.Date(k.Year, time.Month(k.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns the first day of k's month.
func (k Key) FirstOfMonth() Key {
	return Key{Year: k.Year, Month: k.Month, Day: 1}
}

// AddDays shifts k by n days.
func (k Key) AddDays(n int) Key {
	return FromTime(k.Time(nil).AddDate(0, 0, n))
}

// AddMonths shifts k by n months. Overflowing days roll forward
// (Jan 31 + 1 month is Mar 3 in a non-leap year), as with time.AddDate.
func (k Key) AddMonths(n int) Key {
	return FromTime(k.Time(nil).AddDate(0, n, 0))
}

// MarshalJSON encodes k as a YYYY-MM-DD string.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts a YYYY-MM-DD string. A date-time prefix
// ("2025-03-15T10:00:00Z") is truncated to its date part.
func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s) > len(Layout) {
		s = s[:len(Layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
