package dosing

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display precision of the result values.
const (
	// DefaultPrecision applies to every value but the tank duration.
	DefaultPrecision = 2
	// TankDurationPrecision applies to the tank duration.
	TankDurationPrecision = 1
)

// Result holds the derived dosing figures. Values may be non-finite, so
// encode Formatted() rather than Result itself.
type Result struct {
	AdjustedTDS         float64
	ConcentrationFactor float64
	ConcentratedTDS     float64
	DosingRate          float64
	DailyConsumption    float64
	TankDuration        float64
}

// FormattedResult is the display form of a Result.
type FormattedResult struct {
	AdjustedTDS         string `json:"adjustedTDS"         yaml:"adjustedTDS"`
	ConcentrationFactor string `json:"concentrationFactor" yaml:"concentrationFactor"`
	ConcentratedTDS     string `json:"concentratedTDS"     yaml:"concentratedTDS"`
	DosingRate          string `json:"dosingRate"          yaml:"dosingRate"`
	DailyConsumption    string `json:"dailyConsumption"    yaml:"dailyConsumption"`
	TankDuration        string `json:"tankDuration"        yaml:"tankDuration"`
}

// Metric is one labelled result value.
type Metric struct {
	Key       string
	Label     string
	Unit      string
	Value     float64
	Precision int
}

// Metrics returns the result values in display order.
func (r Result) Metrics() []Metric {
	return []Metric{
		{Key: "adjustedTDS", Label: "Adjusted TDS", Unit: "ppm", Value: r.AdjustedTDS, Precision: DefaultPrecision},
		{Key: "concentrationFactor", Label: "Concentration Factor", Unit: "x",
			Value: r.ConcentrationFactor, Precision: DefaultPrecision},
		{Key: "concentratedTDS", Label: "Concentrated TDS", Unit: "ppm",
			Value: r.ConcentratedTDS, Precision: DefaultPrecision},
		{Key: "dosingRate", Label: "Dosing Rate", Unit: "LPH", Value: r.DosingRate, Precision: DefaultPrecision},
		{Key: "dailyConsumption", Label: "Daily Consumption", Unit: "ltr/day",
			Value: r.DailyConsumption, Precision: DefaultPrecision},
		{Key: "tankDuration", Label: "Tank Duration", Unit: "days",
			Value: r.TankDuration, Precision: TankDurationPrecision},
	}
}

// Formatted renders every value with its fixed number of decimals.
func (r Result) Formatted() FormattedResult {
	return FormattedResult{
		AdjustedTDS:         FormatFixed(r.AdjustedTDS, DefaultPrecision),
		ConcentrationFactor: FormatFixed(r.ConcentrationFactor, DefaultPrecision),
		ConcentratedTDS:     FormatFixed(r.ConcentratedTDS, DefaultPrecision),
		DosingRate:          FormatFixed(r.DosingRate, DefaultPrecision),
		DailyConsumption:    FormatFixed(r.DailyConsumption, DefaultPrecision),
		TankDuration:        FormatFixed(r.TankDuration, TankDurationPrecision),
	}
}

// Finite reports whether every value is a finite number.
func (r Result) Finite() bool {
	return len(r.NonFinite()) == 0
}

// NonFinite returns the keys of values that are infinite or NaN.
func (r Result) NonFinite() []string {
	var keys []string
	for _, m := range r.Metrics() {
		if math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
			keys = append(keys, m.Key)
		}
	}
	return keys
}

// nonFiniteText returns the display text of a non-finite value.
func nonFiniteText(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}

// FormatFixed renders v with prec decimals, rounding exact ties away from
// zero. Non-finite values render as "Infinity", "-Infinity" or "NaN".
func FormatFixed(v float64, prec int) string {
	if s, ok := nonFiniteText(v); ok {
		return s
	}
	d := roundFixed(v, prec)
	return d.render(d.intPart.String())
}

// Round returns v rounded the way FormatFixed renders it. Non-finite values
// are returned unchanged.
func Round(v float64, prec int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(FormatFixed(v, prec), 64)
	if err != nil {
		return v
	}
	return r
}

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatDisplay renders v like FormatFixed with thousands separators for
// human-facing tables.
func FormatDisplay(v float64, prec int) string {
	if s, ok := nonFiniteText(v); ok {
		return s
	}
	d := roundFixed(v, prec)
	intText := d.intPart.String()
	if d.intPart.IsInt64() {
		intText = printer.Sprintf("%d", d.intPart.Int64())
	}
	return d.render(intText)
}
