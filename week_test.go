package timec

import (
	"testing"
	"time"
)

func TestWeekNumbers(t *testing.T) {
	for _, test := range []struct {
		date   string
		monday int
		sunday int
	}{
		// 2016 starts on a Friday: both counts stay at 0 until the anchors.
		{date: "2016-01-01", monday: 0, sunday: 0},
		{date: "2016-01-03", monday: 0, sunday: 1},
		{date: "2016-01-04", monday: 1, sunday: 1},
		{date: "2016-09-23", monday: 38, sunday: 38},
		{date: "2016-12-31", monday: 52, sunday: 52},
		// 2017 starts on a Sunday: the Sunday count starts immediately.
		{date: "2017-01-01", monday: 0, sunday: 1},
		{date: "2017-01-02", monday: 1, sunday: 1},
	} {
		test := test
		t.Run(test.date, func(t *testing.T) {
			v, err := time.Parse("2006-01-02", test.date)
			if err != nil {
				t.Fatal(err)
			}
			if got := mondayWeek(v); got != test.monday {
				t.Fatalf("expected monday week %d but got %d", test.monday, got)
			}
			if got := sundayWeek(v); got != test.sunday {
				t.Fatalf("expected sunday week %d but got %d", test.sunday, got)
			}
		})
	}
}

func TestISOWeekDate(t *testing.T) {
	for _, test := range []struct {
		year     int
		week     int
		weekday  int
		expected string
	}{
		{year: 2016, week: 38, weekday: 5, expected: "2016-09-23"},
		{year: 2015, week: 53, weekday: 5, expected: "2016-01-01"},
		{year: 2015, week: 1, weekday: 1, expected: "2014-12-29"},
		{year: 2016, week: 1, weekday: 1, expected: "2016-01-04"},
		{year: 2020, week: 53, weekday: 7, expected: "2021-01-03"},
	} {
		test := test
		t.Run(test.expected, func(t *testing.T) {
			got := isoWeekDate(test.year, test.week, test.weekday, time.UTC).Format("2006-01-02")
			if got != test.expected {
				t.Fatalf("expected [%s] but got [%s]", test.expected, got)
			}
		})
	}
}

func TestAnchoredWeekDate(t *testing.T) {
	for _, test := range []struct {
		year     int
		week     int
		weekday  int
		expected string
	}{
		{year: 2016, week: 38, weekday: 5, expected: "2016-09-23"},
		{year: 2016, week: 1, weekday: 1, expected: "2016-01-04"},
		{year: 2016, week: 0, weekday: 5, expected: "2016-01-01"},
		{year: 2017, week: 1, weekday: 1, expected: "2017-01-02"},
	} {
		test := test
		t.Run(test.expected, func(t *testing.T) {
			got := anchoredWeekDate(test.year, test.week, test.weekday, time.UTC).Format("2006-01-02")
			if got != test.expected {
				t.Fatalf("expected [%s] but got [%s]", test.expected, got)
			}
		})
	}
}

func TestISOWeekday(t *testing.T) {
	// 2016-09-18 is a Sunday.
	base := time.Date(2016, time.September, 18, 0, 0, 0, 0, time.UTC)
	expected := []int{7, 1, 2, 3, 4, 5, 6}
	for i, want := range expected {
		if got := isoWeekday(base.AddDate(0, 0, i)); got != want {
			t.Fatalf("expected %d for day %d but got %d", want, i, got)
		}
	}
}
