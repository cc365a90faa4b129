package dosing

// Fixed formula constants.
const (
	// TDSDivisor scales raw TDS (ppm) to the adjusted figure.
	TDSDivisor = 600.0

	// PercentBase is the 100% reference of the recovery ratio.
	PercentBase = 100.0

	// LitresPerCubicMetre converts m³/hr to LPH.
	LitresPerCubicMetre = 1000.0

	// DoseFraction is the dosing volume per litre of flow.
	DoseFraction = 0.001

	// HoursPerDay spreads the dose over a day.
	HoursPerDay = 24.0
)

// Calculate computes the dosing figures from the form inputs.
//
// Only TDS, recovery, flow, tank size and running hours take part; the other
// fields, including every ion concentration, are ignored. Divisions are not
// guarded: recovery = 100 yields an infinite concentration factor and a zero
// daily consumption yields a non-finite tank duration.
func Calculate(in Inputs) Result {
	tds := ParseNumber(in.TDS)
	flow := ParseNumber(in.Flow)
	recovery := ParseNumber(in.Recovery)
	tankSize := ParseNumber(in.TankSize)
	runningHours := ParseNumber(in.RunningHours)

	adjustedTDS := tds / TDSDivisor
	concentrationFactor := PercentBase / (PercentBase - recovery)
	concentratedTDS := adjustedTDS * concentrationFactor
	dosingRate := (flow * LitresPerCubicMetre * DoseFraction) / HoursPerDay
	dailyConsumption := dosingRate * runningHours
	tankDuration := tankSize / dailyConsumption

	return Result{
		AdjustedTDS:         adjustedTDS,
		ConcentrationFactor: concentrationFactor,
		ConcentratedTDS:     concentratedTDS,
		DosingRate:          dosingRate,
		DailyConsumption:    dailyConsumption,
		TankDuration:        tankDuration,
	}
}
