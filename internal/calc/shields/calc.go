package shields

import (
	"math"
)

// Gravity is the gravitational acceleration used by every evaluation, m/s^2.
const Gravity = 9.81

type Input struct {
	WaterDensityKgM3    float64 `json:"water_density_kg_m3"`
	SedimentDensityKgM3 float64 `json:"sediment_density_kg_m3"`
	GrainDiameterM      float64 `json:"grain_diameter_m"`
	ShearVelocityMS     float64 `json:"shear_velocity_m_s"`
	CriticalShields     float64 `json:"critical_shields"`
}

type Result struct {
	BedShearStressPa float64 `json:"bed_shear_stress_pa"`
	ShieldsNumber    float64 `json:"shields_number"`
	CriticalShields  float64 `json:"critical_shields"`
	ErosionOccurs    bool    `json:"erosion_occurs"`
}

// Evaluate applies the Shields formula without any validation. Degenerate
// inputs produce whatever IEEE-754 arithmetic gives (Inf or NaN).
func Evaluate(in Input) Result {
	// tau0 = rho_w * u*^2
	tau0 := in.WaterDensityKgM3 * (in.ShearVelocityMS * in.ShearVelocityMS)
	theta := tau0 / (Gravity * (in.SedimentDensityKgM3 - in.WaterDensityKgM3) * in.GrainDiameterM)
	return Result{
		BedShearStressPa: tau0,
		ShieldsNumber:    theta,
		CriticalShields:  in.CriticalShields,
		ErosionOccurs:    theta > in.CriticalShields,
	}
}

// Calculate validates the input before evaluating it. Non-finite fields are
// reported as ErrInvalidInput, physically meaningless configurations as
// ErrDegenerateConfiguration.
func Calculate(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}
	res := Evaluate(in)
	if !finite(res.ShieldsNumber) {
		return Result{}, degenerate("shields_number", "evaluation produced a non-finite Shields number")
	}
	if res.ShieldsNumber < 0 {
		return Result{}, degenerate("shields_number", "evaluation produced a negative Shields number")
	}
	return res, nil
}

// Validate reports the first problem found with in, or nil.
func Validate(in Input) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"water_density_kg_m3", in.WaterDensityKgM3},
		{"sediment_density_kg_m3", in.SedimentDensityKgM3},
		{"grain_diameter_m", in.GrainDiameterM},
		{"shear_velocity_m_s", in.ShearVelocityMS},
		{"critical_shields", in.CriticalShields},
	}
	for _, f := range fields {
		if !finite(f.v) {
			return invalid(f.name, "must be a finite number")
		}
	}
	if in.WaterDensityKgM3 <= 0 {
		return degenerate("water_density_kg_m3", "water density must be positive")
	}
	if in.SedimentDensityKgM3 <= in.WaterDensityKgM3 {
		return degenerate("sediment_density_kg_m3", "sediment density must exceed water density")
	}
	if in.GrainDiameterM <= 0 {
		return degenerate("grain_diameter_m", "grain diameter must be positive")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
