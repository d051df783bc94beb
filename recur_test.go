package timec

import (
	"testing"
	"time"
)

func collect(r *Recurrence, max int) []string {
	var out []string
	for len(out) < max {
		v, ok := r.Next()
		if !ok {
			break
		}
		out = append(out, v.String())
	}
	return out
}

func TestEvery(t *testing.T) {
	start := mustTime(t, 2016, time.January, 31, 10, 0, 0, UTC)
	for _, test := range []struct {
		name     string
		rec      *Recurrence
		max      int
		expected []string
	}{
		{
			name: "monthly clamps at month end",
			rec:  Every(start, 1, UnitMonth),
			max:  3,
			expected: []string{
				"2016-01-31T10:00:00Z",
				"2016-02-29T10:00:00Z",
				"2016-03-29T10:00:00Z",
			},
		},
		{
			name: "every two weeks",
			rec:  Every(start, 2, UnitWeek),
			max:  3,
			expected: []string{
				"2016-01-31T10:00:00Z",
				"2016-02-14T10:00:00Z",
				"2016-02-28T10:00:00Z",
			},
		},
		{
			name: "yearly from leap day",
			rec:  Every(mustTime(t, 2016, time.February, 29, 0, 0, 0, UTC), 1, UnitYear),
			max:  3,
			expected: []string{
				"2016-02-29T00:00:00Z",
				"2017-02-28T00:00:00Z",
				"2018-02-28T00:00:00Z",
			},
		},
		{
			name: "step below one is treated as one",
			rec:  Every(start, 0, UnitDay),
			max:  2,
			expected: []string{
				"2016-01-31T10:00:00Z",
				"2016-02-01T10:00:00Z",
			},
		},
		{
			name: "hourly",
			rec:  Every(start, 6, UnitHour),
			max:  2,
			expected: []string{
				"2016-01-31T10:00:00Z",
				"2016-01-31T16:00:00Z",
			},
		},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got := collect(test.rec, test.max)
			if len(got) != len(test.expected) {
				t.Fatalf("expected %d instants but got %d: %v", len(test.expected), len(got), got)
			}
			for i := range got {
				if got[i] != test.expected[i] {
					t.Fatalf("instant %d: expected [%s] but got [%s]", i, test.expected[i], got[i])
				}
			}
		})
	}
}

func TestRecurrenceUntil(t *testing.T) {
	start := mustTime(t, 2016, time.January, 1, 0, 0, 0, UTC)
	bound := mustTime(t, 2016, time.January, 15, 0, 0, 0, UTC)
	got := collect(Every(start, 1, UnitWeek).Until(bound), 10)
	expected := []string{
		"2016-01-01T00:00:00Z",
		"2016-01-08T00:00:00Z",
		"2016-01-15T00:00:00Z",
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d instants but got %d: %v", len(expected), len(got), got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("instant %d: expected [%s] but got [%s]", i, expected[i], got[i])
		}
	}
}

func TestRecurrencePeek(t *testing.T) {
	start := mustTime(t, 2016, time.January, 1, 0, 0, 0, UTC)
	r := Every(start, 1, UnitDay)
	if !r.Peek().Equal(start) {
		t.Fatal("expected Peek to return the start before any Next call")
	}
	if _, ok := r.Next(); !ok {
		t.Fatal("expected Next to yield the start")
	}
	if got := r.Peek().String(); got != "2016-01-02T00:00:00Z" {
		t.Fatalf("expected [2016-01-02T00:00:00Z] but got [%s]", got)
	}
}

func TestUnitString(t *testing.T) {
	for unit, expected := range map[Unit]string{
		UnitSecond: "second",
		UnitMinute: "minute",
		UnitHour:   "hour",
		UnitDay:    "day",
		UnitWeek:   "week",
		UnitMonth:  "month",
		UnitYear:   "year",
	} {
		if got := unit.String(); got != expected {
			t.Fatalf("expected [%s] but got [%s]", expected, got)
		}
	}
}
