package nutrition

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFeeding_Rounding(t *testing.T) {
	for _, tc := range []struct{ mer, kcal float64 }{
		{1191.63, 350},
		{245.5, 380},
		{708.55, 410.5},
		{60, 300},
	} {
		f, ok := PlanFeeding(tc.mer, tc.kcal)
		require.True(t, ok)
		raw := tc.mer / tc.kcal * 100
		assert.Equal(t, int(math.Round(raw)), f.DailyGrams)
		assert.Equal(t, int(math.Round(raw*0.8)), f.LossGrams)
		assert.Equal(t, int(math.Round(raw*1.15)), f.GainGrams)

		// ratios within rounding tolerance
		assert.InDelta(t, 0.8, float64(f.LossGrams)/float64(f.DailyGrams), 2.0/float64(f.DailyGrams))
		assert.InDelta(t, 1.15, float64(f.GainGrams)/float64(f.DailyGrams), 2.0/float64(f.DailyGrams))
	}
}

func TestPlanFeeding_NoDensity(t *testing.T) {
	for _, kcal := range []float64{0, -10, math.NaN()} {
		_, ok := PlanFeeding(900, kcal)
		assert.False(t, ok, "kcal=%v", kcal)
	}
}

func TestAdvisor_AdultDogScenario(t *testing.T) {
	birth := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	adv := NewAdvisorAt(testToday)

	rec, err := adv.Advise(Profile{
		Species:   ParseSpecies("dog"),
		WeightKg:  ptr(20.0),
		BirthDate: &birth,
		Activity:  ActivityNormal,
	})
	require.NoError(t, err)

	assert.Equal(t, 662, rec.RestingEnergy)
	assert.Equal(t, 1192, rec.MaintenanceEnergy)
	assert.Equal(t, 1.8, rec.Multiplier)
	require.True(t, rec.HasGrams())
	// gramos sobre el MER sin redondear: 1191.63/350*100 = 340.47
	assert.Equal(t, 340, *rec.DailyGrams)
	assert.Equal(t, 272, *rec.LossGrams)
	assert.Equal(t, 392, *rec.GainGrams)
}

func TestAdvisor_DefaultAndZeroDensity(t *testing.T) {
	adv := NewAdvisorAt(testToday)
	p := Profile{Species: SpeciesCat, WeightKg: ptr(4.0), BirthDate: birthMonthsAgo(30)}

	withDefault, err := adv.Advise(p)
	require.NoError(t, err)
	require.True(t, withDefault.HasGrams())

	explicit := p
	explicit.FoodKcalPer100g = ptr(DefaultFoodKcalPer100g)
	same, err := adv.Advise(explicit)
	require.NoError(t, err)
	assert.Equal(t, *withDefault.DailyGrams, *same.DailyGrams)

	zero := p
	zero.FoodKcalPer100g = ptr(0.0)
	rec, err := adv.Advise(zero)
	require.NoError(t, err)
	assert.False(t, rec.HasGrams())
	assert.Nil(t, rec.LossGrams)
	assert.Nil(t, rec.GainGrams)
	assert.Equal(t, withDefault.MaintenanceEnergy, rec.MaintenanceEnergy)
}

func TestAdvisor_MultiplierIncludesActivity(t *testing.T) {
	adv := NewAdvisorAt(testToday)
	rec, err := adv.Advise(Profile{
		Species:  SpeciesDog,
		WeightKg: ptr(20.0), BirthDate: birthMonthsAgo(36),
		Activity: ActivityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.16, rec.Multiplier)
}

func TestAdvisor_MissingInputs(t *testing.T) {
	_, err := NewAdvisorAt(testToday).Advise(Profile{Species: SpeciesDog})
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPlanWeightTrend(t *testing.T) {
	wt, ok := PlanWeightTrend(ptr(10.0))
	require.True(t, ok)
	assert.InDelta(t, 0.2, wt.TargetLossPerWeek, 1e-9)
	assert.InDelta(t, 0.15, wt.TargetGainPerWeek, 1e-9)

	wt, ok = PlanWeightTrend(ptr(4.37))
	require.True(t, ok)
	assert.InDelta(t, 0.09, wt.TargetLossPerWeek, 1e-9)
	assert.InDelta(t, 0.07, wt.TargetGainPerWeek, 1e-9)

	_, ok = PlanWeightTrend(nil)
	assert.False(t, ok)
}

func TestPlanFeeding_UnrepresentableGrams(t *testing.T) {
	for _, kcal := range []float64{1e-300, 5e-324} {
		_, ok := PlanFeeding(1192, kcal)
		assert.False(t, ok, "kcal=%v", kcal)
	}
	_, ok := PlanFeeding(math.Inf(1), 350)
	assert.False(t, ok)
}

func TestAdvisor_ExtremeWeightIsInsufficient(t *testing.T) {
	adv := NewAdvisorAt(testToday)
	for _, w := range []float64{1e300, math.Inf(1), math.NaN()} {
		_, err := adv.Advise(Profile{Species: SpeciesDog, WeightKg: ptr(w), BirthDate: birthMonthsAgo(36)})
		require.ErrorIs(t, err, ErrInsufficientData, "w=%v", w)
	}
}

func TestAdvisor_TinyDensityHasNoGrams(t *testing.T) {
	rec, err := NewAdvisorAt(testToday).Advise(Profile{
		Species:         SpeciesDog,
		WeightKg:        ptr(20.0),
		BirthDate:       birthMonthsAgo(36),
		FoodKcalPer100g: ptr(1e-300),
	})
	require.NoError(t, err)
	assert.False(t, rec.HasGrams())
	assert.Equal(t, 662, rec.RestingEnergy)
}

func TestValidRanges(t *testing.T) {
	for _, w := range []float64{0.01, 12.5, MaxWeightKg} {
		assert.True(t, ValidWeight(w), "w=%v", w)
	}
	for _, w := range []float64{0, -1, MaxWeightKg + 0.1, 1e300, math.Inf(1), math.NaN()} {
		assert.False(t, ValidWeight(w), "w=%v", w)
	}
	for _, k := range []float64{MinFoodKcalPer100g, 350, MaxFoodKcalPer100g} {
		assert.True(t, ValidFoodKcal(k), "kcal=%v", k)
	}
	for _, k := range []float64{0, 1e-300, 0.5, 1001, math.Inf(1), math.NaN()} {
		assert.False(t, ValidFoodKcal(k), "kcal=%v", k)
	}
}
