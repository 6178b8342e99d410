package service

import (
	"errors"
	"fmt"
)

// ErrMissingDataQuality is returned when the comparison carries no data-quality metrics.
var ErrMissingDataQuality = errors.New("comparison has no data-quality metrics")

// CheckError identifies which anomaly check failed and wraps its cause.
type CheckError struct {
	Err   error
	Check string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("anomaly check %s failed: %v", e.Check, e.Err)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// ComponentError identifies which part of the risk score could not be computed.
type ComponentError struct {
	Err       error
	Component string
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("risk component %s failed: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
