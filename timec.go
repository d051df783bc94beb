// Package timec provides calendar-correct time values with locale-aware
// strftime/strptime, a human-readable duration difference, and a recurrence
// iterator.
//
// A Time is an epoch second count paired with a timezone identity. Every
// field accessor is a computed view over that pair and every setter is a
// decompose / delta / recompose round trip through calendar arithmetic, so
// there is no cached wall-clock state that can drift from the epoch.
package timec

import (
	"fmt"
	"time"
)

// Nower supplies the current time. Tests swap in a fixed clock.
type Nower interface {
	Now() time.Time
}

type realNower struct{}

func (realNower) Now() time.Time { return time.Now() }

// DefaultNower returns the current time when called with Now() unless overridden.
var DefaultNower Nower = realNower{}

// Time is an instant on the UTC-based linear time axis plus the zone identity
// used when rendering wall-clock fields. The zero value is the Unix epoch in UTC.
type Time struct {
	sec  int64
	zone Zone
}

func FromEpoch(sec int64, zone Zone) Time {
	return Time{sec: sec, zone: zone}
}

// New builds a Time from explicit wall-clock fields in the given zone.
// Out-of-range fields roll over: April 31 becomes May 1.
func New(year int, month time.Month, day, hour, min, sec int, zone Zone) (Time, error) {
	loc, err := zone.location()
	if err != nil {
		return Time{}, err
	}
	v := time.Date(year, month, day, hour, min, sec, 0, loc)
	return Time{sec: v.Unix(), zone: zone}, nil
}

func Now() Time {
	return Time{sec: DefaultNower.Now().Unix(), zone: UTC}
}

// Parse reads the canonical ISO-8601 extended form produced by String,
// e.g. 2016-09-23T04:28:30Z or 2016-09-23T04:28:30+02:00.
func Parse(s string) (Time, error) {
	return Strptime(s, "%Y-%m-%dT%H:%M:%S%z")
}

func (t Time) Epoch() int64 { return t.sec }
func (t Time) Zone() Zone   { return t.zone }

func (t Time) Equal(u Time) bool { return t.sec == u.sec }

// view decomposes the epoch into wall-clock fields in t's zone. A zone that
// no longer resolves degrades to UTC here; constructors validate zones, so
// this only happens for values built from unchecked identities.
func (t Time) view() time.Time {
	loc, err := t.zone.location()
	if err != nil {
		loc = time.UTC
	}
	return time.Unix(t.sec, 0).In(loc)
}

func (t Time) Year() int         { return t.view().Year() }
func (t Time) Month() time.Month { return t.view().Month() }
func (t Time) Day() int          { return t.view().Day() }
func (t Time) Hour() int         { return t.view().Hour() }
func (t Time) Minute() int       { return t.view().Minute() }
func (t Time) Second() int       { return t.view().Second() }
func (t Time) YearDay() int      { return t.view().YearDay() }

// Weekday follows the ISO convention: 1=Monday .. 7=Sunday.
func (t Time) Weekday() int { return isoWeekday(t.view()) }

// ISOWeek returns the ISO 8601 week-based year and week number.
func (t Time) ISOWeek() (year, week int) { return t.view().ISOWeek() }

// OffsetMinutes is the zone offset in effect at this instant.
func (t Time) OffsetMinutes() int {
	_, secs := t.view().Zone()
	return secs / 60
}

// Setters replay a signed delta through calendar arithmetic rather than
// mutating a field in place; setting a field to its current value is a no-op.

func (t Time) WithYear(v int) Time          { return t.AddYears(v - t.Year()) }
func (t Time) WithMonth(v time.Month) Time  { return t.AddMonths(int(v) - int(t.Month())) }
func (t Time) WithDay(v int) Time           { return t.AddDays(v - t.Day()) }
func (t Time) WithHour(v int) Time          { return t.AddHours(v - t.Hour()) }
func (t Time) WithMinute(v int) Time        { return t.AddMinutes(v - t.Minute()) }
func (t Time) WithSecond(v int) Time        { return t.AddSeconds(v - t.Second()) }

// WithZone relabels the value: same instant, new zone identity.
func (t Time) WithZone(z Zone) Time {
	return Time{sec: t.sec, zone: z}
}

// WithZoneSameLocal keeps the wall-clock fields and moves the epoch so they
// read the same in the new zone.
func (t Time) WithZoneSameLocal(z Zone) (Time, error) {
	loc, err := z.location()
	if err != nil {
		return Time{}, err
	}
	v := t.view()
	nv := time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), 0, loc)
	return Time{sec: nv.Unix(), zone: z}, nil
}

// AddYears adds n calendar years, clamping Feb 29 to Feb 28 off leap years.
func (t Time) AddYears(n int) Time { return t.AddMonths(12 * n) }

// AddMonths adds n calendar months. A day past the end of the target month
// clamps to its last day: Jan 31 + 1 month is Feb 28 or 29.
func (t Time) AddMonths(n int) Time {
	v := t.view()
	total := int(v.Month()) - 1 + n
	year := v.Year() + floorDiv(total, 12)
	month := time.Month(mod(total, 12) + 1)
	day := v.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	nv := time.Date(year, month, day, v.Hour(), v.Minute(), v.Second(), 0, v.Location())
	return Time{sec: nv.Unix(), zone: t.zone}
}

func (t Time) AddWeeks(n int) Time { return t.AddDays(7 * n) }

func (t Time) AddDays(n int) Time {
	v := t.view().AddDate(0, 0, n)
	return Time{sec: v.Unix(), zone: t.zone}
}

func (t Time) AddHours(n int) Time   { return Time{sec: t.sec + int64(n)*3600, zone: t.zone} }
func (t Time) AddMinutes(n int) Time { return Time{sec: t.sec + int64(n)*60, zone: t.zone} }
func (t Time) AddSeconds(n int) Time { return Time{sec: t.sec + int64(n), zone: t.zone} }

// String renders the canonical ISO-8601 extended form with explicit offset.
// Zero offsets render as the Z suffix.
func (t Time) String() string {
	v := t.view()
	if _, secs := v.Zone(); secs == 0 {
		return v.Format("2006-01-02T15:04:05") + "Z"
	}
	return v.Format("2006-01-02T15:04:05-07:00")
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("timec: cannot unmarshal %s into Time", b)
	}
	v, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
