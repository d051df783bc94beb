package timec

// Unit is a calendar unit for recurrence steps.
type Unit int

const (
	UnitSecond Unit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

func (u Unit) String() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	}
	return "unknown"
}

func (t Time) addUnit(n int, u Unit) Time {
	switch u {
	case UnitSecond:
		return t.AddSeconds(n)
	case UnitMinute:
		return t.AddMinutes(n)
	case UnitHour:
		return t.AddHours(n)
	case UnitDay:
		return t.AddDays(n)
	case UnitWeek:
		return t.AddWeeks(n)
	case UnitMonth:
		return t.AddMonths(n)
	case UnitYear:
		return t.AddYears(n)
	}
	return t
}

// Recurrence yields successive instants separated by a fixed number of
// calendar units, starting at the given start. Month-length rollover follows
// the same clamping as AddMonths: every 1 month from Jan 31 visits Feb 28/29.
type Recurrence struct {
	next  Time
	n     int
	unit  Unit
	until *Time
}

// Every builds a recurrence starting at start and stepping n units at a
// time. A step of less than one unit is treated as one.
func Every(start Time, n int, unit Unit) *Recurrence {
	if n < 1 {
		n = 1
	}
	return &Recurrence{next: start, n: n, unit: unit}
}

// Until bounds the recurrence: instants after t are not yielded.
func (r *Recurrence) Until(t Time) *Recurrence {
	r.until = &t
	return r
}

// Peek returns the instant Next would yield, without advancing.
func (r *Recurrence) Peek() Time { return r.next }

// Next yields the next instant, or false once past the Until bound.
func (r *Recurrence) Next() (Time, bool) {
	if r.until != nil && r.next.sec > r.until.sec {
		return Time{}, false
	}
	cur := r.next
	r.next = cur.addUnit(r.n, r.unit)
	return cur, true
}
