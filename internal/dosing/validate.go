package dosing

import "strings"

// IsComplete reports whether every field of the variant holds non-blank text.
// It is the only gate in front of Calculate: numeric validity, range and sign
// are not checked.
func IsComplete(in Inputs, v Variant) bool {
	return len(MissingFields(in, v)) == 0
}

// MissingFields lists the blank fields of the variant in display order.
func MissingFields(in Inputs, v Variant) []Field {
	var missing []Field
	for _, spec := range v.Fields() {
		if strings.TrimSpace(in.Get(spec.Field)) == "" {
			missing = append(missing, spec.Field)
		}
	}
	return missing
}
