package nutrition

// WeightTrend son los objetivos semanales en kg.
type WeightTrend struct {
	TargetLossPerWeek float64 // 2% del peso
	TargetGainPerWeek float64 // 1.5% del peso
}

// PlanWeightTrend no depende de la especie. ok=false sin peso.
func PlanWeightTrend(weightKg *float64) (WeightTrend, bool) {
	if weightKg == nil || *weightKg <= 0 {
		return WeightTrend{}, false
	}
	return WeightTrend{
		TargetLossPerWeek: round2(*weightKg * 0.02),
		TargetGainPerWeek: round2(*weightKg * 0.015),
	}, true
}
