package engine

import (
	"encoding/json"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date in YYYY-MM-DD form. The zero value means "never"
// and is stored as JSON null.
type Day string

func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	return Day(t.In(loc).Format(dayLayout))
}

func (d Day) IsZero() bool { return d == "" }

func (d Day) String() string {
	if d == "" {
		return "never"
	}
	return string(d)
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts a string or null. Any other JSON type decodes to the
// zero Day instead of failing the whole record.
func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = ""
		return nil
	}
	*d = Day(s)
	return nil
}

// DaysBetween returns to minus from in whole calendar days. ok is false when
// either side is not a valid date.
func DaysBetween(from, to Day) (days int, ok bool) {
	a, err := time.Parse(dayLayout, string(from))
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(dayLayout, string(to))
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// ApplyStreak updates the visit streak for a session starting on today.
//
// First visit starts the streak at 1. A visit on the day after lastSeen
// extends it, a longer gap resets it to 1, and a same-day visit changes
// nothing. lastSeen always ends up as today.
func ApplyStreak(r *Record, today Day) {
	if r.LastSeen.IsZero() {
		r.LastSeen = today
		r.Streak = 1
		return
	}
	if r.LastSeen == today {
		return
	}
	if diff, ok := DaysBetween(r.LastSeen, today); ok {
		switch {
		case diff == 1:
			r.Streak++
		case diff > 1:
			r.Streak = 1
		}
	}
	r.LastSeen = today
}
