package timec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fields is the reconciled sparse record produced from raw parser captures:
// mutually consistent and ready for calendar construction. At most one of
// {Month+Day, ISOWeek/Week(+Weekday), DayOfYear} is populated; when none is,
// construction falls back to today.
type Fields struct {
	Epoch     *int64
	Year      *int
	Month     *int
	Day       *int
	DayOfYear *int
	ISOWeek   *int // %V, resolved against the ISO week-based year
	Week      *int // %W (or %U converted), anchored on the first Monday of the year
	Weekday   *int // 1=Monday..7=Sunday
	Hour      *int
	Minute    *int
	Second    *int
	ZoneName  string
	Offset    *int // minutes east of UTC

	weekYear bool // Year came from %G/%g and counts ISO weeks, not calendar months
}

func intp(v int) *int { return &v }

// reconcile applies the mktime precedence rules to the raw captures. Rules
// fire only when their inputs are present and a higher-precedence rule has
// not already set the target.
func reconcile(raw *rawFields, cfg *config) (Fields, error) {
	var f Fields

	// Zone first: an unresolvable parsed zone name is silently discarded in
	// favor of offset data, never an error. Names denoting zero offset
	// collapse to the canonical UTC identity.
	if raw.zoneName != "" {
		z := ZoneByName(raw.zoneName)
		if loc, err := z.location(); err == nil {
			if loc == time.UTC {
				f.ZoneName = "UTC"
			} else {
				f.ZoneName = raw.zoneName
			}
		}
	}
	if f.ZoneName == "" && raw.offset != "" {
		min, err := parseOffsetMinutes(raw.offset)
		if err != nil {
			return Fields{}, &InvalidTimeSpecError{Reason: fmt.Sprintf("bad offset [%s]", raw.offset)}
		}
		f.Offset = &min
	}

	// Epoch bypasses all other date and time determination.
	if raw.epoch != "" {
		epoch, err := strconv.ParseInt(raw.epoch, 10, 64)
		if err != nil {
			return Fields{}, &InvalidTimeSpecError{Reason: fmt.Sprintf("bad epoch [%s]", raw.epoch)}
		}
		f.Epoch = &epoch
		return f, nil
	}

	reconcileYear(raw, &f)

	weekday, err := reconcileWeekday(raw, cfg)
	if err != nil {
		return Fields{}, err
	}

	if err := reconcileDate(raw, &f, weekday, cfg); err != nil {
		return Fields{}, err
	}

	if err := reconcileClock(raw, &f, cfg); err != nil {
		return Fields{}, err
	}
	return f, nil
}

// reconcileYear resolves the year with precedence full year > century+yy >
// windowed yy > ISO week-year (windowed for the 2-digit form).
func reconcileYear(raw *rawFields, f *Fields) {
	switch {
	case raw.year != "":
		f.Year = intp(numField(raw.year))
	case raw.century != "" && raw.year2 != "":
		f.Year = intp(numField(raw.century)*100 + numField(raw.year2))
	case raw.year2 != "":
		f.Year = intp(windowYear(numField(raw.year2)))
	case raw.century != "":
		f.Year = intp(numField(raw.century) * 100)
	case raw.isoYear != "":
		f.Year = intp(numField(raw.isoYear))
		f.weekYear = true
	case raw.isoYear2 != "":
		f.Year = intp(windowYear(numField(raw.isoYear2)))
		f.weekYear = true
	}
}

// windowYear maps a 2-digit year into the century window ending 50 years
// after the current year.
func windowYear(yy int) int {
	year := 1900 + yy
	if year < DefaultNower.Now().Year()-50 {
		year += 100
	}
	return year
}

// reconcileWeekday resolves the weekday with precedence numeric Monday-based
// > numeric Sunday-based (normalized so Sunday=7) > locale name (list
// position, 0-based then +1).
func reconcileWeekday(raw *rawFields, cfg *config) (*int, error) {
	switch {
	case raw.weekdayMon != "":
		return intp(numField(raw.weekdayMon)), nil
	case raw.weekdaySun != "":
		wd := numField(raw.weekdaySun)
		if wd == 0 {
			wd = 7
		}
		return intp(wd), nil
	case raw.weekdayName != "":
		rec, err := cfg.record()
		if err != nil {
			return nil, err
		}
		for i := 0; i < 7; i++ {
			if (i < len(rec.Weekdays) && strings.EqualFold(rec.Weekdays[i], raw.weekdayName)) ||
				(i < len(rec.WeekdaysAbbr) && strings.EqualFold(rec.WeekdaysAbbr[i], raw.weekdayName)) {
				return intp(i + 1), nil
			}
		}
		return nil, &InvalidTimeSpecError{Reason: fmt.Sprintf("weekday [%s] is not in locale [%s]", raw.weekdayName, cfg.localeID)}
	}
	return nil, nil
}

// reconcileDate picks exactly one of the three ways of locating a day within
// the year: month+day > week+weekday > day-of-year.
func reconcileDate(raw *rawFields, f *Fields, weekday *int, cfg *config) error {
	month, err := reconcileMonth(raw, cfg)
	if err != nil {
		return err
	}
	day := 0
	if raw.day != "" {
		day = numField(raw.day)
		if day < 1 || day > 31 {
			return &InvalidTimeSpecError{Reason: fmt.Sprintf("day of month %d out of range", day)}
		}
	}

	switch {
	case month != nil || day != 0:
		f.Month = month
		if day != 0 {
			f.Day = intp(day)
		}
	case raw.isoWeek != "" || raw.mondayWeek != "" || raw.sundayWeek != "":
		switch {
		case raw.isoWeek != "":
			week := numField(raw.isoWeek)
			if week < 1 || week > 53 {
				return &InvalidTimeSpecError{Reason: fmt.Sprintf("ISO week %d out of range", week)}
			}
			f.ISOWeek = intp(week)
		case raw.mondayWeek != "":
			week := numField(raw.mondayWeek)
			if week > 53 {
				return &InvalidTimeSpecError{Reason: fmt.Sprintf("week %d out of range", week)}
			}
			f.Week = intp(week)
		default:
			// Sunday-based count converts to Monday-based by decrementing
			// when the weekday is Sunday.
			week := numField(raw.sundayWeek)
			if week > 53 {
				return &InvalidTimeSpecError{Reason: fmt.Sprintf("week %d out of range", week)}
			}
			if weekday != nil && *weekday == 7 {
				week--
			}
			f.Week = intp(week)
		}
		f.Weekday = weekday
	case raw.dayOfYear != "":
		yday := numField(raw.dayOfYear)
		if yday < 1 || yday > 366 {
			return &InvalidTimeSpecError{Reason: fmt.Sprintf("day of year %d out of range", yday)}
		}
		f.DayOfYear = intp(yday)
	default:
		f.Weekday = weekday
	}
	return nil
}

func reconcileMonth(raw *rawFields, cfg *config) (*int, error) {
	if raw.month != "" {
		m := numField(raw.month)
		if m < 1 || m > 12 {
			return nil, &InvalidTimeSpecError{Reason: fmt.Sprintf("month %d out of range", m)}
		}
		return intp(m), nil
	}
	if raw.monthName == "" {
		return nil, nil
	}
	rec, err := cfg.record()
	if err != nil {
		return nil, err
	}
	for i := 0; i < 12; i++ {
		if (i < len(rec.Months) && strings.EqualFold(rec.Months[i], raw.monthName)) ||
			(i < len(rec.MonthsAbbr) && strings.EqualFold(rec.MonthsAbbr[i], raw.monthName)) {
			return intp(i + 1), nil
		}
	}
	return nil, &InvalidTimeSpecError{Reason: fmt.Sprintf("month [%s] is not in locale [%s]", raw.monthName, cfg.localeID)}
}

// reconcileClock resolves the time of day: 24-hour capture wins over 12-hour
// plus marker. Absent fields stay unset and construct as zero, so time-only
// input anchors to today at second-of-day 0 and overlays what was parsed.
func reconcileClock(raw *rawFields, f *Fields, cfg *config) error {
	switch {
	case raw.hour24 != "":
		h := numField(raw.hour24)
		if h > 23 {
			return &InvalidTimeSpecError{Reason: fmt.Sprintf("hour %d out of range", h)}
		}
		f.Hour = intp(h)
	case raw.hour12 != "":
		h := numField(raw.hour12)
		if h < 1 || h > 12 {
			return &InvalidTimeSpecError{Reason: fmt.Sprintf("12-hour clock hour %d out of range", h)}
		}
		if raw.ampm != "" {
			pm, err := markerIsPM(raw.ampm, cfg)
			if err != nil {
				return err
			}
			if pm && h < 12 {
				h += 12
			} else if !pm && h == 12 {
				h = 0
			}
		}
		f.Hour = intp(h)
	}
	if raw.minute != "" {
		m := numField(raw.minute)
		if m > 59 {
			return &InvalidTimeSpecError{Reason: fmt.Sprintf("minute %d out of range", m)}
		}
		f.Minute = intp(m)
	}
	if raw.second != "" {
		s := numField(raw.second)
		if s > 60 {
			return &InvalidTimeSpecError{Reason: fmt.Sprintf("second %d out of range", s)}
		}
		f.Second = intp(s)
	}
	return nil
}

func markerIsPM(captured string, cfg *config) (bool, error) {
	rec, err := cfg.record()
	if err != nil {
		return false, err
	}
	am, pm, err := rec.Markers(cfg.localeID)
	if err != nil {
		return false, err
	}
	norm := normalizeMarker(captured)
	switch norm {
	case normalizeMarker(pm):
		return true, nil
	case normalizeMarker(am):
		return false, nil
	}
	return false, &InvalidTimeSpecError{Reason: fmt.Sprintf("marker [%s] is not am/pm in locale [%s]", captured, cfg.localeID)}
}

func normalizeMarker(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, ".", ""))
}

// numField converts a regex-validated digit capture, tolerating the leading
// space the %e/%k/%l fragments may include.
func numField(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// construct builds the final Time. Date determination uses whichever of
// {year+month+day, year+week+weekday, year+day-of-year, year alone} was
// resolved, defaulting to today; clock fields are applied as additive deltas
// over midnight so carry normalizes through the calendar.
func (f Fields) construct() (Time, error) {
	zone := UTC
	switch {
	case f.ZoneName != "":
		zone = ZoneByName(f.ZoneName)
	case f.Offset != nil:
		zone = FixedZone(*f.Offset)
	}
	if f.Epoch != nil {
		return FromEpoch(*f.Epoch, zone), nil
	}
	loc, err := zone.location()
	if err != nil {
		return Time{}, err
	}
	now := DefaultNower.Now().In(loc)

	year := now.Year()
	if f.Year != nil {
		year = *f.Year
	}
	var v time.Time
	switch {
	case f.Month != nil || f.Day != nil:
		month := now.Month()
		if f.Month != nil {
			month = time.Month(*f.Month)
		}
		day := 1
		if f.Day != nil {
			day = *f.Day
		}
		v = time.Date(year, month, day, 0, 0, 0, 0, loc)
	case f.ISOWeek != nil:
		v = isoWeekDate(year, *f.ISOWeek, weekdayOrMonday(f.Weekday), loc)
	case f.Week != nil:
		v = anchoredWeekDate(year, *f.Week, weekdayOrMonday(f.Weekday), loc)
	case f.DayOfYear != nil:
		v = time.Date(year, time.January, 1, 0, 0, 0, 0, loc).AddDate(0, 0, *f.DayOfYear-1)
	case f.Year != nil:
		if f.weekYear {
			// A bare week-based year starts at ISO week 1, Monday.
			v = isoWeekDate(year, 1, 1, loc)
		} else {
			v = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		}
	default:
		v = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}

	var delta time.Duration
	if f.Hour != nil {
		delta += time.Duration(*f.Hour) * time.Hour
	}
	if f.Minute != nil {
		delta += time.Duration(*f.Minute) * time.Minute
	}
	if f.Second != nil {
		delta += time.Duration(*f.Second) * time.Second
	}
	v = v.Add(delta)
	return Time{sec: v.Unix(), zone: zone}, nil
}

func weekdayOrMonday(wd *int) int {
	if wd == nil {
		return 1
	}
	return *wd
}
