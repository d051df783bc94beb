package timec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, s string) Time {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestBetween(t *testing.T) {
	for _, test := range []struct {
		name     string
		from     string
		to       string
		expected Diff
	}{
		{
			name:     "every unit",
			from:     "2016-01-01T00:00:00Z",
			to:       "2017-02-09T03:04:05Z",
			expected: Diff{Sign: 1, Years: 1, Months: 1, Weeks: 1, Days: 1, Hours: 3, Minutes: 4, Seconds: 5},
		},
		{
			name:     "month lengths are respected",
			from:     "2016-01-31T00:00:00Z",
			to:       "2016-03-01T00:00:00Z",
			expected: Diff{Sign: 1, Months: 1, Days: 1},
		},
		{
			name:     "reversed order flips sign only",
			from:     "2016-03-01T00:00:00Z",
			to:       "2016-01-31T00:00:00Z",
			expected: Diff{Sign: -1, Months: 1, Days: 1},
		},
		{
			name:     "equal instants",
			from:     "2016-01-01T00:00:00Z",
			to:       "2016-01-01T00:00:00Z",
			expected: Diff{},
		},
		{
			name:     "seconds only",
			from:     "2016-01-01T00:00:00Z",
			to:       "2016-01-01T00:00:42Z",
			expected: Diff{Sign: 1, Seconds: 42},
		},
		{
			name:     "leap year span",
			from:     "2016-02-29T00:00:00Z",
			to:       "2017-03-01T00:00:00Z",
			expected: Diff{Sign: 1, Years: 1, Days: 1},
		},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got := Between(mustParse(t, test.from), mustParse(t, test.to))
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("unexpected diff (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestDiffString(t *testing.T) {
	for _, test := range []struct {
		name     string
		diff     Diff
		expected string
	}{
		{name: "all units", diff: Diff{Sign: 1, Years: 1, Months: 2, Days: 3}, expected: "1 year, 2 months and 3 days"},
		{name: "single unit", diff: Diff{Sign: 1, Hours: 5}, expected: "5 hours"},
		{name: "singulars", diff: Diff{Sign: 1, Weeks: 1, Minutes: 1}, expected: "1 week and 1 minute"},
		{name: "zero", diff: Diff{}, expected: "0 seconds"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := test.diff.String(); got != test.expected {
				t.Fatalf("expected [%s] but got [%s]", test.expected, got)
			}
		})
	}
}

func TestDiffLimited(t *testing.T) {
	d := Diff{Sign: 1, Years: 1, Months: 2, Days: 3, Minutes: 4}
	if got := d.Limited(2); got != "1 year and 2 months" {
		t.Fatalf("expected [1 year and 2 months] but got [%s]", got)
	}
	if got := d.Limited(1); got != "1 year" {
		t.Fatalf("expected [1 year] but got [%s]", got)
	}
	if got := d.Limited(0); got != "1 year, 2 months, 3 days and 4 minutes" {
		t.Fatalf("expected [1 year, 2 months, 3 days and 4 minutes] but got [%s]", got)
	}
}

func TestDiffRelative(t *testing.T) {
	for _, test := range []struct {
		name     string
		diff     Diff
		expected string
	}{
		{name: "future", diff: Diff{Sign: 1, Days: 2}, expected: "in 2 days"},
		{name: "past", diff: Diff{Sign: -1, Hours: 3}, expected: "3 hours ago"},
		{name: "now", diff: Diff{}, expected: "now"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := test.diff.Relative(); got != test.expected {
				t.Fatalf("expected [%s] but got [%s]", test.expected, got)
			}
		})
	}
}
