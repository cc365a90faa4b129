package dosing

import (
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for the dosing form. Compare with errors.Is().
var (
	// ErrIncompleteForm indicates at least one field of the form is empty.
	ErrIncompleteForm = constError("please fill all fields before calculating")

	// ErrUnknownField indicates a field name that the form variant does not carry.
	ErrUnknownField = constError("unknown form field")

	// ErrDuplicateField indicates two names that resolve to the same field.
	ErrDuplicateField = constError("field given more than once")

	// ErrUnknownVariant indicates an unrecognized form variant name.
	ErrUnknownVariant = constError("unknown form variant")
)

// AlertMessage is the blocking alert shown when calculate is requested on an
// incomplete form.
const AlertMessage = "Please fill all fields before calculating"

// IncompleteError is returned by Form.Calculate when the form is incomplete.
// It wraps ErrIncompleteForm and lists the missing fields in display order.
type IncompleteError struct {
	Missing []Field
}

func (e *IncompleteError) Error() string {
	return AlertMessage
}

// Detail returns the alert followed by the names of the missing fields.
func (e *IncompleteError) Detail() string {
	if len(e.Missing) == 0 {
		return AlertMessage
	}
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return AlertMessage + " (missing: " + strings.Join(names, ", ") + ")"
}

// Unwrap allows errors.Is(err, ErrIncompleteForm).
func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteForm
}
