package timec

import "fmt"

// UnsupportedSpecifierError is returned when a format template contains a
// %-specifier with no registered behavior. The message shape is part of the
// contract: callers match on it to implement skip/fallback handling.
type UnsupportedSpecifierError struct {
	Specifier string // includes the leading %, e.g. "%Q"
}

func (e *UnsupportedSpecifierError) Error() string {
	return fmt.Sprintf("unsupported format specifier: %s", e.Specifier)
}

// ParseMismatchError reports that an input string stopped matching its format
// template. Offset is the byte position in Input where the first fragment
// failed to match.
type ParseMismatchError struct {
	Input  string
	Format string
	Offset int
}

func (e *ParseMismatchError) Error() string {
	return fmt.Sprintf("cannot parse [%s] with format [%s]: mismatch at byte offset %d", e.Input, e.Format, e.Offset)
}

// InvalidTimeSpecError reports fields that were individually parseable but
// jointly inconsistent or out of range.
type InvalidTimeSpecError struct {
	Reason string
}

func (e *InvalidTimeSpecError) Error() string {
	return "invalid time specification: " + e.Reason
}

// UnknownTimezoneError reports an explicitly supplied zone identifier that
// does not resolve. Zone names captured during a parse never surface this
// error; they are silently discarded in favor of offset data.
type UnknownTimezoneError struct {
	Name string
}

func (e *UnknownTimezoneError) Error() string {
	return fmt.Sprintf("unknown timezone [%s]", e.Name)
}
