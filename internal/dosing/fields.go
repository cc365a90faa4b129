// Package dosing implements the chemical dosing form for reverse-osmosis
// plants: a form state holder, the completeness validator and the dosing
// calculator.
//
// Field values are kept as the user typed them and only parsed when a
// calculation runs. The calculator is a pure function of the inputs.
package dosing

import (
	"fmt"
	"sort"
	"strings"
)

// Field identifies a single form input.
type Field string

// Base plant fields, in display order.
const (
	FieldTDS          Field = "tds"
	FieldTemperature  Field = "temperature"
	FieldPumpCapacity Field = "pumpCapacity"
	FieldRecovery     Field = "recovery"
	FieldFlow         Field = "flow"
	FieldTankSize     Field = "tankSize"
	FieldPumpSetting  Field = "pumpSetting"
	FieldRunningHours Field = "runningHours"
)

// Ion concentration fields, carried only by the chemical variant.
const (
	FieldCa   Field = "ca"
	FieldMg   Field = "mg"
	FieldCO3  Field = "co3"
	FieldHCO3 Field = "hco3"
	FieldCl   Field = "cl"
	FieldFe   Field = "fe"
)

// Group separates plant parameters from chemical parameters for layout.
type Group int

const (
	// GroupPlant holds the plant operating parameters.
	GroupPlant Group = iota
	// GroupChemical holds the ion concentrations.
	GroupChemical
)

// FieldSpec describes how a field is presented.
type FieldSpec struct {
	Field Field  `json:"field"   yaml:"field"`
	Label string `json:"label"   yaml:"label"`
	Unit  string `json:"unit"    yaml:"unit"`
	Group Group  `json:"group"   yaml:"group"`
}

//nolint:gochecknoglobals // Static field catalogue.
var baseFields = []FieldSpec{
	{Field: FieldTDS, Label: "TDS", Unit: "ppm"},
	{Field: FieldTemperature, Label: "Temperature of Feed Water", Unit: "°C"},
	{Field: FieldPumpCapacity, Label: "Dosing Pump Capacity", Unit: "LPH"},
	{Field: FieldRecovery, Label: "Recovery", Unit: "%"},
	{Field: FieldFlow, Label: "Flow in m³/hr (1 m³ = 1000 LPH)", Unit: "m³/hr"},
	{Field: FieldTankSize, Label: "Dosing Tank Size (Volume) in Litre", Unit: "ltr"},
	{Field: FieldPumpSetting, Label: "Dosing Pump Setting in %", Unit: "%"},
	{Field: FieldRunningHours, Label: "Plant Running Hour/Day", Unit: "hr/day"},
}

//nolint:gochecknoglobals // Static field catalogue.
var ionFields = []FieldSpec{
	{Field: FieldCa, Label: "Ca (Calcium)", Unit: "ppm", Group: GroupChemical},
	{Field: FieldMg, Label: "Mg (Magnesium)", Unit: "ppm", Group: GroupChemical},
	{Field: FieldCO3, Label: "CO3 (Carbonate)", Unit: "ppm", Group: GroupChemical},
	{Field: FieldHCO3, Label: "HCO3 (Bicarbonate)", Unit: "ppm", Group: GroupChemical},
	{Field: FieldCl, Label: "Cl (Chloride)", Unit: "ppm", Group: GroupChemical},
	{Field: FieldFe, Label: "Fe (Iron)", Unit: "ppm", Group: GroupChemical},
}

// Variant selects which fields the form carries.
type Variant string

const (
	// VariantBasic carries the eight plant parameters only.
	VariantBasic Variant = "basic"
	// VariantChemical adds the six ion concentrations. The ion values are
	// required but no formula reads them.
	VariantChemical Variant = "chemical"
)

// DefaultVariant is used when no variant is configured.
const DefaultVariant = VariantChemical

// ParseVariant converts a name into a Variant. The empty string yields DefaultVariant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultVariant, nil
	case VariantBasic:
		return VariantBasic, nil
	case VariantChemical:
		return VariantChemical, nil
	default:
		return "", fmt.Errorf("%w: %q (expected basic or chemical)", ErrUnknownVariant, s)
	}
}

// Fields returns the field specs of the variant in display order.
func (v Variant) Fields() []FieldSpec {
	specs := make([]FieldSpec, 0, len(baseFields)+len(ionFields))
	specs = append(specs, baseFields...)
	if v != VariantBasic {
		specs = append(specs, ionFields...)
	}
	return specs
}

// Has reports whether the variant carries field f.
func (v Variant) Has(f Field) bool {
	for _, spec := range v.Fields() {
		if spec.Field == f {
			return true
		}
	}
	return false
}

// Spec returns the presentation spec for f.
func Spec(f Field) (FieldSpec, bool) {
	for _, spec := range VariantChemical.Fields() {
		if spec.Field == f {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// legacyHCO3Name is the bicarbonate field id used by the first mobile release.
const legacyHCO3Name = "hcoe"

// ParseField resolves a field name. Matching is case-insensitive so that
// "runninghours" and "runningHours" are the same field.
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	if strings.EqualFold(trimmed, legacyHCO3Name) {
		return FieldHCO3, nil
	}
	for _, spec := range VariantChemical.Fields() {
		if strings.EqualFold(string(spec.Field), trimmed) {
			return spec.Field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ResolveFields maps field names to fields. Names are resolved in sorted
// order, and two names for the same field ("hco3" and "hcoe", or "flow" and
// "Flow") are rejected with ErrDuplicateField.
func ResolveFields(values map[string]string) (map[Field]string, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[Field]string, len(values))
	seen := make(map[Field]string, len(values))
	for _, name := range names {
		field, err := ParseField(name)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[field]; dup {
			return nil, fmt.Errorf("%w: %q and %q both name %s", ErrDuplicateField, prev, name, field)
		}
		seen[field] = name
		resolved[field] = values[name]
	}
	return resolved, nil
}
