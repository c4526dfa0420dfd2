package shields

import "fmt"

// Summary is the one-line verdict shown next to a result.
func Summary(res Result) string {
	if res.ErosionOccurs {
		return fmt.Sprintf("Erosion occurs! θ = %.6f > θcr = %g", res.ShieldsNumber, res.CriticalShields)
	}
	return fmt.Sprintf("No erosion. θ = %.6f ≤ θcr = %g", res.ShieldsNumber, res.CriticalShields)
}

func Status(res Result) string {
	if res.ErosionOccurs {
		return "Erosion occurs"
	}
	return "No erosion"
}
