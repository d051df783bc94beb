package timec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/timeclib/timec/locale"
)

// Option adjusts how Strftime and Strptime run.
type Option func(*config)

// WithLocale selects the locale id used for names, markers and the
// locale-supplied composite templates. The default is C.
func WithLocale(id string) Option {
	return func(c *config) { c.localeID = id }
}

// WithStore points the engine at a specific locale store instead of the
// process-wide default.
func WithStore(st *locale.Store) Option {
	return func(c *config) { c.store = st }
}

// Lenient relaxes Strptime matching: the match may cover only a contiguous
// part of the input instead of consuming all of it. Strftime ignores it.
func Lenient() Option {
	return func(c *config) { c.strict = false }
}

type config struct {
	localeID string
	store    *locale.Store
	strict   bool
	rec      *locale.Record
}

func newConfig(opts []Option) *config {
	c := &config{localeID: "C", strict: true}
	for _, o := range opts {
		o(c)
	}
	if c.store == nil {
		c.store = locale.DefaultStore()
	}
	return c
}

// record resolves the locale record lazily, so templates that never touch
// locale data work against any store.
func (c *config) record() (*locale.Record, error) {
	if c.rec == nil {
		rec, err := c.store.Lookup(c.localeID)
		if err != nil {
			return nil, err
		}
		c.rec = rec
	}
	return c.rec, nil
}

// Fixed sub-templates for the composite specifiers that are not
// locale-supplied. The locale-supplied ones (%c %x %X %r) come from the
// record's default templates.
const (
	templateMonthDayYear = "%m/%d/%y" // %D
	templateYearMonthDay = "%Y-%m-%d" // %F
	templateHourMinute   = "%H:%M"    // %R
	templateHourMinSec   = "%H:%M:%S" // %T
	templateDayMonthYear = "%e-%b-%Y" // %v
)

// Strftime renders t according to a strftime-style template. An unknown
// specifier fails with UnsupportedSpecifierError and no partial output.
func Strftime(t Time, format string, opts ...Option) (string, error) {
	return formatTokens(t, tokenize(format), newConfig(opts))
}

func formatTokens(t Time, tokens []token, cfg *config) (string, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.literal {
			sb.WriteString(tok.text)
			continue
		}
		s, err := formatSpecifier(t, tok, cfg)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func formatTemplate(t Time, template string, cfg *config) (string, error) {
	return formatTokens(t, tokenize(template), cfg)
}

func formatSpecifier(t Time, tok token, cfg *config) (string, error) {
	v := t.view()
	switch tok.letter {
	case 'Y':
		return pad(v.Year(), 4, tok.noPad), nil
	case 'y':
		return pad(mod(v.Year(), 100), 2, tok.noPad), nil
	case 'C':
		return pad(v.Year()/100, 2, tok.noPad), nil
	case 'm':
		return pad(int(v.Month()), 2, tok.noPad), nil
	case 'd':
		return pad(v.Day(), 2, tok.noPad), nil
	case 'e':
		return spacePad(v.Day(), 2, tok.noPad), nil
	case 'j':
		return pad(v.YearDay(), 3, tok.noPad), nil
	case 'H':
		return pad(v.Hour(), 2, tok.noPad), nil
	case 'k':
		return spacePad(v.Hour(), 2, tok.noPad), nil
	case 'I':
		return pad(hour12(v.Hour()), 2, tok.noPad), nil
	case 'l':
		return spacePad(hour12(v.Hour()), 2, tok.noPad), nil
	case 'M':
		return pad(v.Minute(), 2, tok.noPad), nil
	case 'S':
		return pad(v.Second(), 2, tok.noPad), nil
	case 'A', 'a':
		rec, err := cfg.record()
		if err != nil {
			return "", err
		}
		names, field := rec.Weekdays, locale.FieldWeekdays
		if tok.letter == 'a' {
			names, field = rec.WeekdaysAbbr, locale.FieldWeekdaysAbbr
		}
		idx := mod(isoWeekday(v)-1, 7)
		if idx >= len(names) {
			return "", &locale.FieldMissingError{Field: field, Locale: cfg.localeID}
		}
		return names[idx], nil
	case 'B', 'b', 'h':
		rec, err := cfg.record()
		if err != nil {
			return "", err
		}
		names, field := rec.Months, locale.FieldMonths
		if tok.letter != 'B' {
			names, field = rec.MonthsAbbr, locale.FieldMonthsAbbr
		}
		idx := int(v.Month()) - 1
		if idx >= len(names) {
			return "", &locale.FieldMissingError{Field: field, Locale: cfg.localeID}
		}
		return names[idx], nil
	case 'p':
		rec, err := cfg.record()
		if err != nil {
			return "", err
		}
		am, pm, err := rec.Markers(cfg.localeID)
		if err != nil {
			return "", err
		}
		if v.Hour() >= 12 {
			return pm, nil
		}
		return am, nil
	case 'G':
		year, _ := v.ISOWeek()
		return pad(year, 4, tok.noPad), nil
	case 'g':
		year, _ := v.ISOWeek()
		return pad(mod(year, 100), 2, tok.noPad), nil
	case 'V':
		_, week := v.ISOWeek()
		return pad(week, 2, tok.noPad), nil
	case 'U':
		return pad(sundayWeek(v), 2, tok.noPad), nil
	case 'W':
		return pad(mondayWeek(v), 2, tok.noPad), nil
	case 'u':
		return strconv.Itoa(isoWeekday(v)), nil
	case 'w':
		return strconv.Itoa(mod(isoWeekday(v), 7)), nil
	case 's':
		return strconv.FormatInt(t.sec, 10), nil
	case 'n':
		return "\n", nil
	case 't':
		return "\t", nil
	case 'z':
		// POSIX sign convention: a positive offset renders with a leading +.
		off := t.OffsetMinutes()
		sign := "+"
		if off < 0 {
			sign = "-"
			off = -off
		}
		return fmt.Sprintf("%s%02d%02d", sign, off/60, off%60), nil
	case 'Z':
		return t.zone.Name(), nil
	case 'c', 'x', 'X', 'r':
		tmpl, err := localeTemplate(tok.letter, cfg)
		if err != nil {
			return "", err
		}
		return formatTemplate(t, tmpl, cfg)
	case 'D':
		return formatTemplate(t, templateMonthDayYear, cfg)
	case 'F':
		return formatTemplate(t, templateYearMonthDay, cfg)
	case 'R':
		return formatTemplate(t, templateHourMinute, cfg)
	case 'T':
		return formatTemplate(t, templateHourMinSec, cfg)
	case 'v':
		return formatTemplate(t, templateDayMonthYear, cfg)
	case '%':
		return "%", nil
	}
	return "", &UnsupportedSpecifierError{Specifier: tok.specifier()}
}

func localeTemplate(letter byte, cfg *config) (string, error) {
	rec, err := cfg.record()
	if err != nil {
		return "", err
	}
	switch letter {
	case 'c':
		return rec.Template(locale.FieldDateTimeFormat, cfg.localeID)
	case 'x':
		return rec.Template(locale.FieldDateFormat, cfg.localeID)
	case 'X':
		return rec.Template(locale.FieldTimeFormat, cfg.localeID)
	}
	return rec.Template(locale.FieldTimeAMPMFormat, cfg.localeID)
}

func hour12(hour int) int {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return h
}

func pad(v, width int, noPad bool) string {
	if noPad {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%0*d", width, v)
}

func spacePad(v, width int, noPad bool) string {
	if noPad {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%*d", width, v)
}
