// Package locale holds the lookup table the strftime/strptime engine reads
// weekday names, month names, am/pm markers and default format templates
// from. Records are immutable once loaded and cached process-wide; the store
// is injectable so tests can run against fixed data.
package locale

import "fmt"

// Field identifies one kind of locale datum in error reports.
type Field string

const (
	FieldRecord         Field = "record"
	FieldWeekdays       Field = "weekdays"
	FieldWeekdaysAbbr   Field = "weekdays_abbr"
	FieldMonths         Field = "months"
	FieldMonthsAbbr     Field = "months_abbr"
	FieldAMPM           Field = "am_pm"
	FieldDateTimeFormat Field = "datetime_format"
	FieldDateFormat     Field = "date_format"
	FieldTimeFormat     Field = "time_format"
	FieldTimeAMPMFormat Field = "time_ampm_format"
)

// FieldMissingError names both the missing datum and the locale it was
// requested from.
type FieldMissingError struct {
	Field  Field
	Locale string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("locale [%s] has no %s data", e.Locale, e.Field)
}

// Record is one locale's data. Weekday lists are Monday-first, month lists
// January-first. AMPM is either empty (locales without an am/pm convention)
// or exactly two markers.
type Record struct {
	Weekdays       []string `yaml:"weekdays" validate:"len=7"`
	WeekdaysAbbr   []string `yaml:"weekdays_abbr" validate:"len=7"`
	Months         []string `yaml:"months" validate:"len=12"`
	MonthsAbbr     []string `yaml:"months_abbr" validate:"len=12"`
	AMPM           []string `yaml:"am_pm,omitempty" validate:"omitempty,len=2"`
	DateTimeFormat string   `yaml:"datetime_format" validate:"required"`
	DateFormat     string   `yaml:"date_format" validate:"required"`
	TimeFormat     string   `yaml:"time_format" validate:"required"`
	TimeAMPMFormat string   `yaml:"time_ampm_format,omitempty"`
}

// Template returns the default format template for the given field, or a
// FieldMissingError naming the locale.
func (r *Record) Template(f Field, localeID string) (string, error) {
	var tmpl string
	switch f {
	case FieldDateTimeFormat:
		tmpl = r.DateTimeFormat
	case FieldDateFormat:
		tmpl = r.DateFormat
	case FieldTimeFormat:
		tmpl = r.TimeFormat
	case FieldTimeAMPMFormat:
		tmpl = r.TimeAMPMFormat
	default:
		return "", &FieldMissingError{Field: f, Locale: localeID}
	}
	if tmpl == "" {
		return "", &FieldMissingError{Field: f, Locale: localeID}
	}
	return tmpl, nil
}

// Markers returns the am/pm marker pair, or a FieldMissingError for locales
// without one.
func (r *Record) Markers(localeID string) (am, pm string, err error) {
	if len(r.AMPM) != 2 {
		return "", "", &FieldMissingError{Field: FieldAMPM, Locale: localeID}
	}
	return r.AMPM[0], r.AMPM[1], nil
}
