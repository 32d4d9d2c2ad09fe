// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoDataAvailable  = errors.New("no data available")
	ErrInsufficientData = errors.New("insufficient data for calculation")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidSeries    = errors.New("invalid price series")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// AnalysisError represents an error produced while analyzing a symbol.
type AnalysisError struct {
	Symbol string
	Stage  string
	Err    error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error [%s] %s: %v", e.Symbol, e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(symbol, stage string, err error) *AnalysisError {
	return &AnalysisError{
		Symbol: symbol,
		Stage:  stage,
		Err:    err,
	}
}

// SeriesError represents a malformed input series detected at ingestion.
type SeriesError struct {
	Index   int
	Message string
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("series error at bar %d: %s", e.Index, e.Message)
}

func (e *SeriesError) Unwrap() error {
	return ErrInvalidSeries
}

// NewSeriesError creates a new SeriesError.
func NewSeriesError(index int, message string) *SeriesError {
	return &SeriesError{
		Index:   index,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
