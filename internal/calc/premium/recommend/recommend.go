package recommend

const (
	unstableAdvice = "Increase sediment stability by reducing flow velocity or using protective structures."
	stableAdvice   = "Current conditions are stable. No immediate action required."
)

// Stability returns the advice for a bed whose Shields number is theta
// against the threshold critical. Equality counts as stable.
func Stability(theta, critical float64) string {
	if theta > critical {
		return unstableAdvice
	}
	return stableAdvice
}

// Margin is theta/critical, the factor by which the bed is loaded past (>1)
// or short of (<1) its mobility threshold. Zero when critical is not positive.
func Margin(theta, critical float64) float64 {
	if critical <= 0 {
		return 0
	}
	return theta / critical
}
