package model

import "fmt"

// DataValidationError reports malformed or rejected product data. It covers
// bad deserialization input, unknown categories, non-boolean availability
// flags and updates attempted before the product was ever created.
// Backend failures are never converted into this type.
type DataValidationError struct {
	Reason string
}

func (e *DataValidationError) Error() string {
	return e.Reason
}

// NewDataValidationError builds a DataValidationError from a format string.
func NewDataValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Reason: fmt.Sprintf(format, args...)}
}
