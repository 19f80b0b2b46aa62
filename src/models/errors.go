package models

import (
	"fmt"
	"time"
)

// ParameterError indicates a strategy or run configuration the caller must
// fix before rerunning, e.g. a missing commission group or NLV currency.
type ParameterError struct {
	Msg string
}

func (e *ParameterError) Error() string {
	return e.Msg
}

func NewParameterErrorf(format string, args ...interface{}) *ParameterError {
	return &ParameterError{Msg: fmt.Sprintf(format, args...)}
}

// DataError indicates stale or incomplete upstream data, e.g. the expected
// signal date missing from the weight table.
type DataError struct {
	Msg          string
	Expected     time.Time
	MaxAvailable time.Time
}

func (e *DataError) Error() string {
	if !e.Expected.IsZero() {
		return fmt.Sprintf("%s (expected %s, max available %s)", e.Msg,
			e.Expected.Format("2006-01-02 15:04:05"), e.MaxAvailable.Format("2006-01-02 15:04:05"))
	}
	return e.Msg
}

// ExternalError wraps a collaborator failure with the name of the failing
// service or database.
type ExternalError struct {
	Service string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}
