package timec

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/timeclib/timec/locale"
)

// fieldKind enumerates the raw captures a template can produce. The
// reconciler's precedence logic handles every kind.
type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldEpoch
	fieldYear
	fieldCentury
	fieldYear2
	fieldISOYear
	fieldISOYear2
	fieldMonth
	fieldMonthName
	fieldDay
	fieldDayOfYear
	fieldISOWeek
	fieldMondayWeek
	fieldSundayWeek
	fieldWeekdayMon
	fieldWeekdaySun
	fieldWeekdayName
	fieldHour24
	fieldHour12
	fieldMinute
	fieldSecond
	fieldAMPM
	fieldZoneName
	fieldOffset
)

// rawFields holds the captured text per field kind, produced fresh per parse
// and consumed once by the reconciler. Empty string means not captured.
type rawFields struct {
	epoch       string
	year        string
	century     string
	year2       string
	isoYear     string
	isoYear2    string
	month       string
	monthName   string
	day         string
	dayOfYear   string
	isoWeek     string
	mondayWeek  string
	sundayWeek  string
	weekdayMon  string
	weekdaySun  string
	weekdayName string
	hour24      string
	hour12      string
	minute      string
	second      string
	ampm        string
	zoneName    string
	offset      string
}

func (r *rawFields) set(k fieldKind, s string) {
	switch k {
	case fieldEpoch:
		r.epoch = s
	case fieldYear:
		r.year = s
	case fieldCentury:
		r.century = s
	case fieldYear2:
		r.year2 = s
	case fieldISOYear:
		r.isoYear = s
	case fieldISOYear2:
		r.isoYear2 = s
	case fieldMonth:
		r.month = s
	case fieldMonthName:
		r.monthName = s
	case fieldDay:
		r.day = s
	case fieldDayOfYear:
		r.dayOfYear = s
	case fieldISOWeek:
		r.isoWeek = s
	case fieldMondayWeek:
		r.mondayWeek = s
	case fieldSundayWeek:
		r.sundayWeek = s
	case fieldWeekdayMon:
		r.weekdayMon = s
	case fieldWeekdaySun:
		r.weekdaySun = s
	case fieldWeekdayName:
		r.weekdayName = s
	case fieldHour24:
		r.hour24 = s
	case fieldHour12:
		r.hour12 = s
	case fieldMinute:
		r.minute = s
	case fieldSecond:
		r.second = s
	case fieldAMPM:
		r.ampm = s
	case fieldZoneName:
		r.zoneName = s
	case fieldOffset:
		r.offset = s
	}
}

// matcher is one compiled fragment: a regexp anchored at the current match
// position whose first capture populates field.
type matcher struct {
	re    *regexp.Regexp
	field fieldKind
}

// compile turns a token sequence into an ordered matcher sequence. Composite
// specifiers expand recursively here, including the locale-supplied ones, so
// matching is template-driven all the way down.
func compile(tokens []token, cfg *config) ([]matcher, error) {
	var ms []matcher
	for _, tok := range tokens {
		if tok.literal {
			m, err := newMatcher(literalPattern(tok.text), fieldNone)
			if err != nil {
				return nil, err
			}
			ms = append(ms, m)
			continue
		}
		switch tok.letter {
		case 'c', 'x', 'X', 'r':
			tmpl, err := localeTemplate(tok.letter, cfg)
			if err != nil {
				return nil, err
			}
			sub, err := compile(tokenize(tmpl), cfg)
			if err != nil {
				return nil, err
			}
			ms = append(ms, sub...)
			continue
		case 'D', 'F', 'R', 'T', 'v':
			tmpl := map[byte]string{
				'D': templateMonthDayYear,
				'F': templateYearMonthDay,
				'R': templateHourMinute,
				'T': templateHourMinSec,
				'v': templateDayMonthYear,
			}[tok.letter]
			sub, err := compile(tokenize(tmpl), cfg)
			if err != nil {
				return nil, err
			}
			ms = append(ms, sub...)
			continue
		}
		pattern, field, err := specifierPattern(tok, cfg)
		if err != nil {
			return nil, err
		}
		m, err := newMatcher(pattern, field)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func newMatcher(pattern string, field fieldKind) (matcher, error) {
	re, err := regexp.Compile("^(" + pattern + ")")
	if err != nil {
		return matcher{}, fmt.Errorf("cannot compile matcher for pattern [%s]: %w", pattern, err)
	}
	return matcher{re: re, field: field}, nil
}

func specifierPattern(tok token, cfg *config) (string, fieldKind, error) {
	switch tok.letter {
	case 'Y':
		return digits(4, tok.noPad), fieldYear, nil
	case 'C':
		return digits(2, tok.noPad), fieldCentury, nil
	case 'y':
		return digits(2, tok.noPad), fieldYear2, nil
	case 'G':
		return digits(4, tok.noPad), fieldISOYear, nil
	case 'g':
		return digits(2, tok.noPad), fieldISOYear2, nil
	case 'm':
		return digits(2, tok.noPad), fieldMonth, nil
	case 'd':
		return digits(2, tok.noPad), fieldDay, nil
	case 'e':
		return `[ ]?[0-9]{1,2}`, fieldDay, nil
	case 'j':
		return digits(3, tok.noPad), fieldDayOfYear, nil
	case 'V':
		return digits(2, tok.noPad), fieldISOWeek, nil
	case 'W':
		return digits(2, tok.noPad), fieldMondayWeek, nil
	case 'U':
		return digits(2, tok.noPad), fieldSundayWeek, nil
	case 'u':
		return `[1-7]`, fieldWeekdayMon, nil
	case 'w':
		return `[0-6]`, fieldWeekdaySun, nil
	case 'H':
		return digits(2, tok.noPad), fieldHour24, nil
	case 'k':
		return `[ ]?[0-9]{1,2}`, fieldHour24, nil
	case 'I':
		return digits(2, tok.noPad), fieldHour12, nil
	case 'l':
		return `[ ]?[0-9]{1,2}`, fieldHour12, nil
	case 'M':
		return digits(2, tok.noPad), fieldMinute, nil
	case 'S':
		return digits(2, tok.noPad), fieldSecond, nil
	case 's':
		return `-?[0-9]+`, fieldEpoch, nil
	case 'A':
		names, err := localeNames(cfg, locale.FieldWeekdays)
		if err != nil {
			return "", fieldNone, err
		}
		return nameAlternation(names), fieldWeekdayName, nil
	case 'a':
		names, err := localeNames(cfg, locale.FieldWeekdaysAbbr)
		if err != nil {
			return "", fieldNone, err
		}
		return nameAlternation(names), fieldWeekdayName, nil
	case 'B':
		names, err := localeNames(cfg, locale.FieldMonths)
		if err != nil {
			return "", fieldNone, err
		}
		return nameAlternation(names), fieldMonthName, nil
	case 'b', 'h':
		names, err := localeNames(cfg, locale.FieldMonthsAbbr)
		if err != nil {
			return "", fieldNone, err
		}
		return nameAlternation(names), fieldMonthName, nil
	case 'p':
		rec, err := cfg.record()
		if err != nil {
			return "", fieldNone, err
		}
		am, pm, err := rec.Markers(cfg.localeID)
		if err != nil {
			return "", fieldNone, err
		}
		return nameAlternation(markerVariants(am, pm)), fieldAMPM, nil
	case 'z':
		return `Z|z|[+-][0-9]{2}(?::?[0-9]{2})?`, fieldOffset, nil
	case 'Z':
		return `[A-Za-z][A-Za-z0-9_/+-]*`, fieldZoneName, nil
	case 'n', 't':
		return `[ \t\n]+`, fieldNone, nil
	case '%':
		return `%`, fieldNone, nil
	}
	return "", fieldNone, &UnsupportedSpecifierError{Specifier: tok.specifier()}
}

func digits(width int, noPad bool) string {
	if noPad {
		return fmt.Sprintf("[0-9]{1,%d}", width)
	}
	return fmt.Sprintf("[0-9]{%d}", width)
}

func localeNames(cfg *config, field locale.Field) ([]string, error) {
	rec, err := cfg.record()
	if err != nil {
		return nil, err
	}
	var names []string
	switch field {
	case locale.FieldWeekdays:
		names = rec.Weekdays
	case locale.FieldWeekdaysAbbr:
		names = rec.WeekdaysAbbr
	case locale.FieldMonths:
		names = rec.Months
	case locale.FieldMonthsAbbr:
		names = rec.MonthsAbbr
	}
	if len(names) == 0 {
		return nil, &locale.FieldMissingError{Field: field, Locale: cfg.localeID}
	}
	return names, nil
}

// nameAlternation builds a longest-match-safe, case-insensitive alternation
// from a literal name list: sorting longest-first keeps a name from shadowing
// another it prefixes.
func nameAlternation(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return "(?i:" + strings.Join(quoted, "|") + ")"
}

// markerVariants extends am/pm markers with their dotted spellings, so a
// locale carrying AM/PM still matches a.m. and p.m. in input.
func markerVariants(am, pm string) []string {
	variants := []string{am, pm}
	for _, m := range []string{am, pm} {
		var sb strings.Builder
		for _, r := range m {
			sb.WriteRune(r)
			sb.WriteByte('.')
		}
		variants = append(variants, sb.String())
	}
	return variants
}

// literalPattern quotes a literal run; whitespace in the template matches any
// whitespace run in the input.
func literalPattern(text string) string {
	var sb strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if c == ' ' || c == '\t' || c == '\n' {
			sb.WriteString(`[ \t\n]+`)
			for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n') {
				i++
			}
			continue
		}
		sb.WriteString(regexp.QuoteMeta(string(c)))
		i++
	}
	return sb.String()
}

// matchTokens runs the compiled fragments left to right. Consumption is
// sequential and non-backtracking: each fragment must match exactly where the
// previous one stopped. In strict mode the whole input must be consumed; in
// lenient mode the first fragment may float forward and trailing text is
// ignored.
func matchTokens(input, format string, ms []matcher, strict bool) (*rawFields, error) {
	raw := &rawFields{}
	pos := 0
	for i, m := range ms {
		idx := m.re.FindStringSubmatchIndex(input[pos:])
		if idx == nil && i == 0 && !strict {
			for start := pos + 1; start <= len(input); start++ {
				if idx = m.re.FindStringSubmatchIndex(input[start:]); idx != nil {
					pos = start
					break
				}
			}
		}
		if idx == nil {
			return nil, &ParseMismatchError{Input: input, Format: format, Offset: pos}
		}
		if m.field != fieldNone && idx[2] >= 0 {
			raw.set(m.field, input[pos+idx[2]:pos+idx[3]])
		}
		pos += idx[1]
	}
	if strict && pos != len(input) {
		return nil, &ParseMismatchError{Input: input, Format: format, Offset: pos}
	}
	return raw, nil
}

// Strptime parses input according to a strftime-style template and builds a
// Time from the reconciled fields. Missing date and time fields default from
// the current clock per the mktime rules.
func Strptime(input, format string, opts ...Option) (Time, error) {
	fields, err := strptimeFields(input, format, opts)
	if err != nil {
		return Time{}, err
	}
	return fields.construct()
}

// StrptimeFields parses input and returns the reconciled fields without
// constructing a Time.
func StrptimeFields(input, format string, opts ...Option) (Fields, error) {
	return strptimeFields(input, format, opts)
}

func strptimeFields(input, format string, opts []Option) (Fields, error) {
	cfg := newConfig(opts)
	ms, err := compile(tokenize(format), cfg)
	if err != nil {
		return Fields{}, err
	}
	raw, err := matchTokens(input, format, ms, cfg.strict)
	if err != nil {
		return Fields{}, err
	}
	return reconcile(raw, cfg)
}
