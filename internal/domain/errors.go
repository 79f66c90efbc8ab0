package domain

import "fmt"

// Error types for consistent error handling across the emission core.
// Every error aborts the current emission; the core never retries and
// never produces partial output.

// ErrUnknownBank indicates the bank number is not in the registry.
type ErrUnknownBank struct {
	Number int
}

func (e *ErrUnknownBank) Error() string {
	return fmt.Sprintf("unknown bank: %03d is not registered", e.Number)
}

// ErrMissingOption indicates a required bank option was not provided.
type ErrMissingOption struct {
	Bank   string
	Option string
}

func (e *ErrMissingOption) Error() string {
	return fmt.Sprintf("missing bank option '%s' required by %s", e.Option, e.Bank)
}

// ErrInvalidOption indicates a bank-specific rule rejected an option value.
type ErrInvalidOption struct {
	Option string
	Reason string
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid value for option '%s': %s", e.Option, e.Reason)
}

// ErrFieldTooLong indicates a computed value does not fit its
// positional slot. This is a bug or out-of-domain input, e.g. a
// payment identifier wider than the bank's nosso-número field.
type ErrFieldTooLong struct {
	Field string
	Value string
	Size  int
}

func (e *ErrFieldTooLong) Error() string {
	return fmt.Sprintf("value '%s' does not fit field '%s' (%d positions)", e.Value, e.Field, e.Size)
}

// ErrMissingValue indicates a mandatory field had no value and no default.
type ErrMissingValue struct {
	Field string
}

func (e *ErrMissingValue) Error() string {
	return fmt.Sprintf("no value resolved for mandatory field '%s'", e.Field)
}

// ErrBadDueDate indicates a due date before the barcode epoch (2000-07-03).
type ErrBadDueDate struct {
	Due string
}

func (e *ErrBadDueDate) Error() string {
	return fmt.Sprintf("due date %s precedes the barcode epoch 2000-07-03", e.Due)
}

// ErrBadDigit indicates a check-digit function received non-decimal input.
type ErrBadDigit struct {
	Input string
}

func (e *ErrBadDigit) Error() string {
	return fmt.Sprintf("check digit input is not all decimal: %q", e.Input)
}

// ErrNegativeNotAllowed indicates a decimal field received a negative value.
type ErrNegativeNotAllowed struct {
	Field string
	Value string
}

func (e *ErrNegativeNotAllowed) Error() string {
	return fmt.Sprintf("negative value %s not allowed in field '%s'", e.Value, e.Field)
}

// ErrValidation indicates a transport-level validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrInvalidBarcode indicates an invalid barcode or digitable line.
type ErrInvalidBarcode struct {
	Input  string
	Reason string
}

func (e *ErrInvalidBarcode) Error() string {
	return fmt.Sprintf("invalid barcode/digitable line: %s", e.Reason)
}
