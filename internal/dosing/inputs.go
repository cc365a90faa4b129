package dosing

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// DefaultTDS is the TDS value a fresh form starts with.
const DefaultTDS = "3000"

// Inputs holds every form value as typed text.
type Inputs struct {
	TDS          string `json:"tds"          yaml:"tds"`
	Temperature  string `json:"temperature"  yaml:"temperature"`
	PumpCapacity string `json:"pumpCapacity" yaml:"pumpCapacity"`
	Recovery     string `json:"recovery"     yaml:"recovery"`
	Flow         string `json:"flow"         yaml:"flow"`
	TankSize     string `json:"tankSize"     yaml:"tankSize"`
	PumpSetting  string `json:"pumpSetting"  yaml:"pumpSetting"`
	RunningHours string `json:"runningHours" yaml:"runningHours"`

	Ca   string `json:"ca,omitempty"   yaml:"ca,omitempty"`
	Mg   string `json:"mg,omitempty"   yaml:"mg,omitempty"`
	CO3  string `json:"co3,omitempty"  yaml:"co3,omitempty"`
	HCO3 string `json:"hco3,omitempty" yaml:"hco3,omitempty"`
	Cl   string `json:"cl,omitempty"   yaml:"cl,omitempty"`
	Fe   string `json:"fe,omitempty"   yaml:"fe,omitempty"`
}

// DefaultInputs returns the values a freshly mounted form shows.
func DefaultInputs() Inputs {
	return Inputs{TDS: DefaultTDS}
}

// ref returns a pointer to the storage of f, or nil for unknown fields.
func (in *Inputs) ref(f Field) *string {
	switch f {
	case FieldTDS:
		return &in.TDS
	case FieldTemperature:
		return &in.Temperature
	case FieldPumpCapacity:
		return &in.PumpCapacity
	case FieldRecovery:
		return &in.Recovery
	case FieldFlow:
		return &in.Flow
	case FieldTankSize:
		return &in.TankSize
	case FieldPumpSetting:
		return &in.PumpSetting
	case FieldRunningHours:
		return &in.RunningHours
	case FieldCa:
		return &in.Ca
	case FieldMg:
		return &in.Mg
	case FieldCO3:
		return &in.CO3
	case FieldHCO3:
		return &in.HCO3
	case FieldCl:
		return &in.Cl
	case FieldFe:
		return &in.Fe
	default:
		return nil
	}
}

// Get returns the text of f. Unknown fields read as empty.
func (in Inputs) Get(f Field) string {
	if p := in.ref(f); p != nil {
		return *p
	}
	return ""
}

// Set replaces the text of f and reports whether f is a known field.
func (in *Inputs) Set(f Field, value string) bool {
	p := in.ref(f)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// numberPrefix matches the longest leading decimal literal, the way
// browser number parsing reads "12.5kg" as 12.5.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`) //nolint:gochecknoglobals // Compiled once.

// ParseNumber converts field text to a number. Leading whitespace (Unicode
// spaces and the byte order mark included) is skipped and the longest numeric
// prefix is used; "Infinity" is accepted with an optional sign. Anything
// unparsable, NaN and negative zero yield 0.
func ParseNumber(s string) float64 {
	t := strings.TrimLeftFunc(s, isLeadingSpace)
	if t == "" {
		return 0
	}

	sign := 1.0
	body := t
	switch body[0] {
	case '+':
		body = body[1:]
	case '-':
		sign = -1
		body = body[1:]
	}
	if strings.HasPrefix(body, "Infinity") {
		return math.Inf(int(sign))
	}

	lit := numberPrefix.FindString(t)
	if lit == "" {
		return 0
	}
	v, err := parseFloatLiteral(lit)
	if err != nil || math.IsNaN(v) || v == 0 {
		return 0
	}
	return v
}

// isLeadingSpace reports whether r is skipped before a number.
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
