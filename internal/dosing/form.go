package dosing

import (
	"fmt"
	"sort"
)

// State is the lifecycle state of a Form.
type State int

const (
	// StateIdle means no calculation has succeeded yet.
	StateIdle State = iota
	// StateCalculated means a result is present.
	StateCalculated
)

// String returns a human-readable representation of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCalculated:
		return "Calculated"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Form is the state holder behind every dosing surface. It owns the typed
// field values and the last successful result.
//
// A Form is not safe for concurrent use; each surface owns its own instance.
type Form struct {
	variant Variant
	inputs  Inputs
	state   State
	result  Result
}

// NewForm creates a form of the given variant with the default values applied.
func NewForm(v Variant) *Form {
	if v == "" {
		v = DefaultVariant
	}
	return &Form{
		variant: v,
		inputs:  DefaultInputs(),
		state:   StateIdle,
	}
}

// NewFormWithDefaults creates a form and presets the given field values on
// top of the built-in defaults. Names the variant does not carry are returned.
func NewFormWithDefaults(v Variant, defaults map[string]string) (*Form, []string) {
	f := NewForm(v)
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	var unknown []string
	for _, name := range names {
		field, err := ParseField(name)
		if err != nil || !f.variant.Has(field) {
			unknown = append(unknown, name)
			continue
		}
		f.inputs.Set(field, defaults[name])
	}
	return f, unknown
}

// Variant returns the form variant.
func (f *Form) Variant() Variant { return f.variant }

// Fields returns the field specs of the form in display order.
func (f *Form) Fields() []FieldSpec { return f.variant.Fields() }

// Inputs returns a copy of the current values.
func (f *Form) Inputs() Inputs { return f.inputs }

// Value returns the current text of field.
func (f *Form) Value(field Field) string { return f.inputs.Get(field) }

// SetField replaces the text of exactly one field. Any text is accepted.
// Fields the variant does not carry yield ErrUnknownField.
func (f *Form) SetField(field Field, value string) error {
	if !f.variant.Has(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.inputs.Set(field, value)
	return nil
}

// IsComplete reports whether every field holds non-blank text.
func (f *Form) IsComplete() bool { return IsComplete(f.inputs, f.variant) }

// Missing lists the blank fields in display order.
func (f *Form) Missing() []Field { return MissingFields(f.inputs, f.variant) }

// State returns the lifecycle state.
func (f *Form) State() State { return f.state }

// Result returns the last result and whether one is present.
func (f *Form) Result() (Result, bool) {
	return f.result, f.state == StateCalculated
}

// Calculate runs the calculate action. An incomplete form returns an
// *IncompleteError and leaves values, result and state untouched. Otherwise
// the result is recomputed from scratch and replaces any previous one.
func (f *Form) Calculate() (Result, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return Result{}, &IncompleteError{Missing: missing}
	}
	f.result = Calculate(f.inputs)
	f.state = StateCalculated
	return f.result, nil
}
