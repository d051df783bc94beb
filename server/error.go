package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/timeclib/timec"
	"github.com/timeclib/timec/internal/logger"
	"github.com/timeclib/timec/locale"
)

// ServerError is the wire representation of a failed request.
type ServerError struct {
	Status  int         `json:"-"`
	Reason  ErrorReason `json:"reason"`
	Message string      `json:"message"`
}

type ResponseError struct {
	Error *ErrorFormat `json:"error"`
}

type ErrorFormat struct {
	Errors  []*ServerError `json:"errors"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
}

func (e *ServerError) Response() []byte {
	b, _ := json.Marshal(&ResponseError{
		Error: &ErrorFormat{
			Errors:  []*ServerError{e},
			Code:    e.Status,
			Message: e.Message,
		},
	})
	return b
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

type ErrorReason string

const (
	Invalid              ErrorReason = "invalid"
	UnsupportedSpecifier ErrorReason = "unsupportedSpecifier"
	ParseMismatch        ErrorReason = "parseMismatch"
	UnknownTimezone      ErrorReason = "unknownTimezone"
	LocaleFieldMissing   ErrorReason = "localeFieldMissing"
	NotFound             ErrorReason = "notFound"
	InternalError        ErrorReason = "internalError"
)

func errInvalid(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  Invalid,
		Message: msg,
	}
}

func errUnsupportedSpecifier(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  UnsupportedSpecifier,
		Message: msg,
	}
}

func errParseMismatch(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  ParseMismatch,
		Message: msg,
	}
}

func errUnknownTimezone(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  UnknownTimezone,
		Message: msg,
	}
}

func errLocaleFieldMissing(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  LocaleFieldMissing,
		Message: msg,
	}
}

func errNotFound(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusNotFound,
		Reason:  NotFound,
		Message: msg,
	}
}

func errInternalError(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusInternalServerError,
		Reason:  InternalError,
		Message: msg,
	}
}

// toServerError maps library errors onto wire reasons.
func toServerError(err error) *ServerError {
	var serr *ServerError
	if errors.As(err, &serr) {
		return serr
	}
	var unsupported *timec.UnsupportedSpecifierError
	if errors.As(err, &unsupported) {
		return errUnsupportedSpecifier(unsupported.Error())
	}
	var mismatch *timec.ParseMismatchError
	if errors.As(err, &mismatch) {
		return errParseMismatch(mismatch.Error())
	}
	var unknownZone *timec.UnknownTimezoneError
	if errors.As(err, &unknownZone) {
		return errUnknownTimezone(unknownZone.Error())
	}
	var invalidSpec *timec.InvalidTimeSpecError
	if errors.As(err, &invalidSpec) {
		return errInvalid(invalidSpec.Error())
	}
	var fieldMissing *locale.FieldMissingError
	if errors.As(err, &fieldMissing) {
		return errLocaleFieldMissing(fieldMissing.Error())
	}
	return errInternalError(err.Error())
}

func errorResponse(ctx context.Context, w http.ResponseWriter, serverError *ServerError) {
	logger.Logger(ctx).Error(
		"error response",
		zap.String("reason", string(serverError.Reason)),
		zap.Int("code", serverError.Status),
		zap.String("message", serverError.Message),
	)
	w.WriteHeader(serverError.Status)
	_, _ = w.Write(serverError.Response())
}
