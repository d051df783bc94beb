package timec

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/tkuchiki/go-timezone"
)

// Zone is a timezone identity: either a named zone (subject to historical and
// DST rules) or a fixed offset in minutes east of UTC. It is metadata on a
// Time value; changing it never changes the instant unless the caller asks
// for the same-local transform.
type Zone struct {
	name   string
	offset int // minutes east of UTC, meaningful only when name is empty
}

// UTC is the canonical zero-offset identity. Fixed offsets of zero and zone
// names denoting zero minutes collapse to it.
var UTC = Zone{name: "UTC"}

func ZoneByName(name string) Zone {
	return Zone{name: name}
}

// FixedZone returns the identity for a fixed offset. Offsets with a
// whole-hour IANA equivalent render as Etc/GMT±N, others as ±HH:MM.
func FixedZone(offsetMinutes int) Zone {
	if offsetMinutes == 0 {
		return UTC
	}
	return Zone{offset: offsetMinutes}
}

func (z Zone) IsFixed() bool { return z.name == "" }

func (z Zone) Name() string {
	if z.name != "" {
		return z.name
	}
	return syntheticZoneName(z.offset)
}

func (z Zone) String() string { return z.Name() }

// OffsetMinutes resolves the zone's offset at the given instant.
func (z Zone) OffsetMinutes(epoch int64) (int, error) {
	loc, err := z.location()
	if err != nil {
		return 0, err
	}
	_, secs := time.Unix(epoch, 0).In(loc).Zone()
	return secs / 60, nil
}

func (z Zone) location() (*time.Location, error) {
	if z.name == "" {
		if z.offset == 0 {
			return time.UTC, nil
		}
		return time.FixedZone(syntheticZoneName(z.offset), z.offset*60), nil
	}
	switch z.name {
	case "UTC", "UCT", "GMT", "Z", "Zulu":
		return time.UTC, nil
	}
	loc, err := loadLocation(z.name)
	if err != nil {
		return nil, &UnknownTimezoneError{Name: z.name}
	}
	return loc, nil
}

var (
	locationMu    sync.RWMutex
	locationCache = map[string]*time.Location{}

	tzdb = timezone.New()
)

// loadLocation resolves an IANA zone name, falling back to the abbreviation
// database for names like CEST that the zoneinfo files do not carry.
func loadLocation(name string) (*time.Location, error) {
	locationMu.RLock()
	loc := locationCache[name]
	locationMu.RUnlock()
	if loc != nil {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		infos, aerr := tzdb.GetTzAbbreviationInfo(name)
		if len(infos) == 0 {
			if aerr != nil {
				return nil, aerr
			}
			return nil, err
		}
		// Ambiguous abbreviations resolve to their first registered offset.
		loc = time.FixedZone(name, infos[0].Offset())
	}
	locationMu.Lock()
	locationCache[name] = loc
	locationMu.Unlock()
	return loc, nil
}

// parseOffsetMinutes converts an offset string in one of the forms Z, ±HH,
// ±HHMM or ±HH:MM to minutes east of UTC.
func parseOffsetMinutes(s string) (int, error) {
	if s == "Z" || s == "z" {
		return 0, nil
	}
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return 0, &UnknownTimezoneError{Name: s}
	}
	hh, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, &UnknownTimezoneError{Name: s}
	}
	mm := 0
	switch {
	case len(s) == 3:
	case len(s) == 5 && s[3] != ':':
		mm, err = strconv.Atoi(s[3:5])
	case len(s) == 6 && s[3] == ':':
		mm, err = strconv.Atoi(s[4:6])
	default:
		return 0, &UnknownTimezoneError{Name: s}
	}
	if err != nil || mm > 59 {
		return 0, &UnknownTimezoneError{Name: s}
	}
	minutes := hh*60 + mm
	if s[0] == '-' {
		minutes = -minutes
	}
	return minutes, nil
}

// wholeHourZoneNames maps whole-hour offsets to their IANA Etc/GMT names.
// The Etc/GMT sign runs opposite to the offset: Etc/GMT-2 means UTC+2.
var wholeHourZoneNames = map[int]string{
	0:    "UTC",
	60:   "Etc/GMT-1",
	120:  "Etc/GMT-2",
	180:  "Etc/GMT-3",
	240:  "Etc/GMT-4",
	300:  "Etc/GMT-5",
	360:  "Etc/GMT-6",
	420:  "Etc/GMT-7",
	480:  "Etc/GMT-8",
	540:  "Etc/GMT-9",
	600:  "Etc/GMT-10",
	660:  "Etc/GMT-11",
	720:  "Etc/GMT-12",
	780:  "Etc/GMT-13",
	840:  "Etc/GMT-14",
	-60:  "Etc/GMT+1",
	-120: "Etc/GMT+2",
	-180: "Etc/GMT+3",
	-240: "Etc/GMT+4",
	-300: "Etc/GMT+5",
	-360: "Etc/GMT+6",
	-420: "Etc/GMT+7",
	-480: "Etc/GMT+8",
	-540: "Etc/GMT+9",
	-600: "Etc/GMT+10",
	-660: "Etc/GMT+11",
	-720: "Etc/GMT+12",
}

// syntheticZoneName maps an offset with no caller-supplied name to a zone
// identifier: Etc/GMT±N for whole hours in -12h..+14h, ±HH:MM otherwise.
func syntheticZoneName(offsetMinutes int) string {
	if name, ok := wholeHourZoneNames[offsetMinutes]; ok {
		return name
	}
	sign := "+"
	o := offsetMinutes
	if o < 0 {
		sign = "-"
		o = -o
	}
	return fmt.Sprintf("%s%02d:%02d", sign, o/60, o%60)
}
