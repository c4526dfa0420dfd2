package threshold

import (
	"fmt"
	"math"

	shields "Sediment/internal/calc/shields"
)

type Result struct {
	CriticalShearStressPa   float64 `json:"critical_shear_stress_pa"`
	CriticalShearVelocityMS float64 `json:"critical_shear_velocity_m_s"`
	MaxMobileDiameterM      float64 `json:"max_mobile_diameter_m"`
	Notes                   string  `json:"notes"`
}

// Calculate solves the Shields relation for the onset of motion: the bed
// shear stress and shear velocity at which theta reaches the critical value,
// and the largest grain the given flow still moves.
func Calculate(in shields.Input) (Result, error) {
	if err := shields.Validate(in); err != nil {
		return Result{}, err
	}
	if in.CriticalShields <= 0 {
		return Result{}, fmt.Errorf("critical shields number must be positive")
	}

	submerged := shields.Gravity * (in.SedimentDensityKgM3 - in.WaterDensityKgM3)
	tauCr := in.CriticalShields * submerged * in.GrainDiameterM
	uCr := math.Sqrt(tauCr / in.WaterDensityKgM3)

	tau0 := shields.Evaluate(in).BedShearStressPa
	dMax := tau0 / (submerged * in.CriticalShields)

	for _, v := range []struct {
		field string
		v     float64
	}{
		{"critical_shear_stress_pa", tauCr},
		{"critical_shear_velocity_m_s", uCr},
		{"max_mobile_diameter_m", dMax},
	} {
		if math.IsNaN(v.v) || math.IsInf(v.v, 0) {
			return Result{}, &shields.EvaluationError{
				Kind:   shields.ErrDegenerateConfiguration,
				Field:  v.field,
				Detail: "threshold is not a finite number",
			}
		}
	}

	return Result{
		CriticalShearStressPa:   tauCr,
		CriticalShearVelocityMS: uCr,
		MaxMobileDiameterM:      dMax,
		Notes:                   "Threshold of motion from the Shields criterion.",
	}, nil
}
