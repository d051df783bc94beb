package timec

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

type fixedNower struct {
	t time.Time
}

func (n fixedNower) Now() time.Time { return n.t }

func withFixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := DefaultNower
	DefaultNower = fixedNower{t: at}
	t.Cleanup(func() { DefaultNower = prev })
}

func mustTime(t *testing.T, year int, month time.Month, day, hour, min, sec int, zone Zone) Time {
	t.Helper()
	v, err := New(year, month, day, hour, min, sec, zone)
	if err != nil {
		t.Fatalf("failed to build time: %v", err)
	}
	return v
}

func TestNewRollsOver(t *testing.T) {
	v := mustTime(t, 2016, time.April, 31, 0, 0, 0, UTC)
	if got := v.String(); got != "2016-05-01T00:00:00Z" {
		t.Fatalf("expected [2016-05-01T00:00:00Z] but got [%s]", got)
	}
}

func TestAccessors(t *testing.T) {
	v := FromEpoch(1474604910, UTC)
	if got := v.Year(); got != 2016 {
		t.Fatalf("expected year 2016 but got %d", got)
	}
	if got := v.Month(); got != time.September {
		t.Fatalf("expected September but got %s", got)
	}
	if got := v.Day(); got != 23 {
		t.Fatalf("expected day 23 but got %d", got)
	}
	if got := v.Hour(); got != 4 {
		t.Fatalf("expected hour 4 but got %d", got)
	}
	if got := v.Minute(); got != 28 {
		t.Fatalf("expected minute 28 but got %d", got)
	}
	if got := v.Second(); got != 30 {
		t.Fatalf("expected second 30 but got %d", got)
	}
	if got := v.YearDay(); got != 267 {
		t.Fatalf("expected year day 267 but got %d", got)
	}
	if got := v.Weekday(); got != 5 {
		t.Fatalf("expected ISO weekday 5 but got %d", got)
	}
	year, week := v.ISOWeek()
	if year != 2016 || week != 38 {
		t.Fatalf("expected ISO week 2016-W38 but got %d-W%d", year, week)
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	for _, test := range []struct {
		name     string
		start    string
		months   int
		expected string
	}{
		{name: "into leap february", start: "2016-01-31T10:00:00Z", months: 1, expected: "2016-02-29T10:00:00Z"},
		{name: "into plain february", start: "2015-01-31T10:00:00Z", months: 1, expected: "2015-02-28T10:00:00Z"},
		{name: "across year boundary", start: "2016-10-31T00:00:00Z", months: 4, expected: "2017-02-28T00:00:00Z"},
		{name: "backward", start: "2016-03-31T00:00:00Z", months: -1, expected: "2016-02-29T00:00:00Z"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			start, err := Parse(test.start)
			if err != nil {
				t.Fatal(err)
			}
			if got := start.AddMonths(test.months).String(); got != test.expected {
				t.Fatalf("expected [%s] but got [%s]", test.expected, got)
			}
		})
	}
}

func TestAddYearsClampsLeapDay(t *testing.T) {
	start := mustTime(t, 2016, time.February, 29, 12, 0, 0, UTC)
	if got := start.AddYears(1).String(); got != "2017-02-28T12:00:00Z" {
		t.Fatalf("expected [2017-02-28T12:00:00Z] but got [%s]", got)
	}
}

func TestSetters(t *testing.T) {
	v := mustTime(t, 2016, time.September, 23, 4, 28, 30, UTC)
	for _, test := range []struct {
		name     string
		got      Time
		expected string
	}{
		{name: "year", got: v.WithYear(2020), expected: "2020-09-23T04:28:30Z"},
		{name: "month", got: v.WithMonth(time.January), expected: "2016-01-23T04:28:30Z"},
		{name: "day", got: v.WithDay(1), expected: "2016-09-01T04:28:30Z"},
		{name: "hour", got: v.WithHour(23), expected: "2016-09-23T23:28:30Z"},
		{name: "minute", got: v.WithMinute(0), expected: "2016-09-23T04:00:30Z"},
		{name: "second", got: v.WithSecond(59), expected: "2016-09-23T04:28:59Z"},
		{name: "same value is identity", got: v.WithDay(23), expected: "2016-09-23T04:28:30Z"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := test.got.String(); got != test.expected {
				t.Fatalf("expected [%s] but got [%s]", test.expected, got)
			}
		})
	}
}

func TestWithZoneKeepsInstant(t *testing.T) {
	v := FromEpoch(1474604910, UTC)
	relabeled := v.WithZone(FixedZone(120))
	if relabeled.Epoch() != v.Epoch() {
		t.Fatalf("expected epoch to stay %d but got %d", v.Epoch(), relabeled.Epoch())
	}
	if got := relabeled.String(); got != "2016-09-23T06:28:30+02:00" {
		t.Fatalf("expected [2016-09-23T06:28:30+02:00] but got [%s]", got)
	}
}

func TestWithZoneSameLocalMovesInstant(t *testing.T) {
	v := FromEpoch(1474604910, UTC)
	moved, err := v.WithZoneSameLocal(FixedZone(120))
	if err != nil {
		t.Fatal(err)
	}
	if got := moved.String(); got != "2016-09-23T04:28:30+02:00" {
		t.Fatalf("expected [2016-09-23T04:28:30+02:00] but got [%s]", got)
	}
	if got := moved.Epoch(); got != v.Epoch()-7200 {
		t.Fatalf("expected epoch %d but got %d", v.Epoch()-7200, got)
	}
}

func TestStringAndParseRoundTrip(t *testing.T) {
	for _, s := range []string{
		"2016-09-23T04:28:30Z",
		"2016-09-23T06:28:30+02:00",
		"1969-12-31T18:30:00-05:30",
	} {
		s := s
		t.Run(s, func(t *testing.T) {
			v, err := Parse(s)
			if err != nil {
				t.Fatal(err)
			}
			if got := v.String(); got != s {
				t.Fatalf("expected [%s] but got [%s]", s, got)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v := FromEpoch(1474604910, UTC)
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `"2016-09-23T04:28:30Z"` {
		t.Fatalf(`expected ["2016-09-23T04:28:30Z"] but got [%s]`, got)
	}
	var decoded Time
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(v) {
		t.Fatalf("expected %d but got %d", v.Epoch(), decoded.Epoch())
	}
}

func TestNowUsesNower(t *testing.T) {
	withFixedNow(t, time.Date(2016, time.September, 23, 4, 28, 30, 0, time.UTC))
	if got := Now().Epoch(); got != 1474604910 {
		t.Fatalf("expected epoch 1474604910 but got %d", got)
	}
}
