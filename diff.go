package timec

import (
	"fmt"
	"strings"
)

// Diff is the calendar-correct breakdown of the span between two instants.
// Units are computed greedily largest-first by stepping whole calendar units,
// so month lengths and leap years are respected.
type Diff struct {
	Sign    int // +1 when the second instant is later, -1 when earlier, 0 when equal
	Years   int
	Months  int
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Between computes the difference from a to b.
func Between(a, b Time) Diff {
	var d Diff
	switch {
	case a.sec == b.sec:
		return d
	case b.sec > a.sec:
		d.Sign = 1
	default:
		d.Sign = -1
		a, b = b, a
	}
	step := func(count *int, advance func(Time, int) Time) {
		for {
			next := advance(a, 1)
			if next.sec > b.sec {
				return
			}
			a = next
			*count++
		}
	}
	step(&d.Years, Time.AddYears)
	step(&d.Months, Time.AddMonths)
	step(&d.Weeks, Time.AddWeeks)
	step(&d.Days, Time.AddDays)
	rest := b.sec - a.sec
	d.Hours = int(rest / 3600)
	d.Minutes = int(rest % 3600 / 60)
	d.Seconds = int(rest % 60)
	return d
}

var diffUnits = []struct {
	name string
	get  func(Diff) int
}{
	{"year", func(d Diff) int { return d.Years }},
	{"month", func(d Diff) int { return d.Months }},
	{"week", func(d Diff) int { return d.Weeks }},
	{"day", func(d Diff) int { return d.Days }},
	{"hour", func(d Diff) int { return d.Hours }},
	{"minute", func(d Diff) int { return d.Minutes }},
	{"second", func(d Diff) int { return d.Seconds }},
}

// String renders all non-zero units, e.g. "1 year, 2 months and 3 days".
// A zero difference renders as "0 seconds".
func (d Diff) String() string { return d.Limited(0) }

// Limited renders at most max leading non-zero units; 0 means no limit.
func (d Diff) Limited(max int) string {
	var parts []string
	for _, u := range diffUnits {
		if max > 0 && len(parts) == max {
			break
		}
		n := u.get(d)
		if n == 0 {
			continue
		}
		name := u.name
		if n != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	switch len(parts) {
	case 0:
		return "0 seconds"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// Relative phrases the difference from the first instant's point of view:
// "in 2 days", "3 hours ago" or "now".
func (d Diff) Relative() string {
	switch d.Sign {
	case 0:
		return "now"
	case 1:
		return "in " + d.String()
	}
	return d.String() + " ago"
}
