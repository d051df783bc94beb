package timec

import "time"

// isoWeekday maps Go's Sunday-based weekday to ISO numbering, 1=Monday..7=Sunday.
func isoWeekday(v time.Time) int {
	wd := int(v.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// weekNumber counts weeks anchored on the first occurrence of startDay
// (ISO weekday numbering) on or after Jan 1. Dates before that anchor are in
// week 0. startDay 1 gives the %W Monday-week count, 7 the %U Sunday-week count.
func weekNumber(v time.Time, startDay int) int {
	jan1 := time.Date(v.Year(), time.January, 1, 0, 0, 0, 0, v.Location())
	anchor := 1 + mod(startDay-isoWeekday(jan1), 7)
	yday := v.YearDay()
	if yday < anchor {
		return 0
	}
	return (yday-anchor)/7 + 1
}

func mondayWeek(v time.Time) int { return weekNumber(v, 1) }
func sundayWeek(v time.Time) int { return weekNumber(v, 7) }

// isoWeekDate builds the date for ISO week-year year, week number week and
// ISO weekday. Jan 4 is always in ISO week 1, so the date is Jan 4 plus
// (week-1) weeks plus the weekday offset from Jan 4's own weekday.
func isoWeekDate(year, week, weekday int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	return jan4.AddDate(0, 0, (week-1)*7+weekday-isoWeekday(jan4))
}

// anchoredWeekDate builds the date for a calendar-year week count where week 1
// starts on the first Monday of the year (the %W convention; %U input is
// converted to this convention before reconciling). weekday is ISO numbering.
func anchoredWeekDate(year, week, weekday int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	anchor := mod(1-isoWeekday(jan1), 7) // days from Jan 1 to the first Monday
	return jan1.AddDate(0, 0, anchor+(week-1)*7+weekday-1)
}
