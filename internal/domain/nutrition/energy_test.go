package nutrition

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// birthMonthsAgo devuelve una fecha de nacimiento exactamente n meses antes de testToday.
func birthMonthsAgo(n int) *time.Time {
	t := testToday.AddDate(0, -n, 0)
	return &t
}

func multiplierOf(t *testing.T, p Profile) float64 {
	t.Helper()
	e, err := ComputeEnergy(p, testToday)
	require.NoError(t, err)
	return e.MER / e.RER
}

func TestRestingEnergy_Formula(t *testing.T) {
	prev := 0.0
	for _, w := range []float64{0.05, 0.5, 1, 4.2, 10, 20, 45.5, 80} {
		got := RestingEnergy(w)
		assert.InDelta(t, 70*math.Pow(w, 0.75), got, 1e-9, "w=%v", w)
		assert.Greater(t, got, prev, "RER must increase with weight (w=%v)", w)
		prev = got
	}
}

func TestComputeEnergy_InsufficientData(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
	}{
		{"nil weight", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(24)}},
		{"zero weight", Profile{Species: SpeciesDog, WeightKg: ptr(0.0), BirthDate: birthMonthsAgo(24)}},
		{"nil birth date", Profile{Species: SpeciesDog, WeightKg: ptr(12.0)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeEnergy(tc.p, testToday)
			require.ErrorIs(t, err, ErrInsufficientData)
		})
	}
}

func TestComputeEnergy_DogStages(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want float64
	}{
		{"puppy under 4 months", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(3)}, 3.0},
		{"junior 4-12 months", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(4)}, 2.0},
		{"junior 11 months", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(11)}, 2.0},
		{"adult intact", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(12)}, 1.8},
		{"adult sterilized", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(36), Sterilized: true}, 1.4},
		{"senior intact", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(96)}, 1.4},
		{"adult BCS 7", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(36), BodyConditionScore: ptr(7)}, 1.0},
		{"adult BCS 6 ignored", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(36), BodyConditionScore: ptr(6)}, 1.8},
		{"adult renal", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(36), Condition: ConditionRenal}, 1.2},
		{"adult cardiac", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(36), Condition: ConditionCardiac}, 1.3},
		{"sterilized senior BCS 8", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(100), Sterilized: true, BodyConditionScore: ptr(8)}, 1.0},
		{"senior BCS 8 renal", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(100), BodyConditionScore: ptr(8), Condition: ConditionRenal}, 1.2},
		{"puppy ignores BCS and condition", Profile{Species: SpeciesDog, BirthDate: birthMonthsAgo(2), BodyConditionScore: ptr(9), Condition: ConditionCardiac}, 3.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.p.WeightKg = ptr(15.0)
			assert.InDelta(t, tc.want, multiplierOf(t, tc.p), 1e-9)
		})
	}
}

func TestComputeEnergy_CatStages(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want float64
	}{
		{"kitten", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(6)}, 2.5},
		{"adult intact", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(24)}, 1.4},
		{"adult sterilized", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(24), Sterilized: true}, 1.1},
		{"senior", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(120)}, 1.1},
		{"overweight", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(24), BodyConditionScore: ptr(7)}, 0.8},
		{"overweight renal", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(24), BodyConditionScore: ptr(9), Condition: ConditionRenal}, 1.1},
		{"cardiac has no cat rule", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(24), Condition: ConditionCardiac}, 1.4},
		{"kitten ignores BCS", Profile{Species: SpeciesCat, BirthDate: birthMonthsAgo(6), BodyConditionScore: ptr(9)}, 2.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.p.WeightKg = ptr(4.2)
			assert.InDelta(t, tc.want, multiplierOf(t, tc.p), 1e-9)
		})
	}
}

func TestComputeEnergy_SmallMammalsAndOther(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want float64
	}{
		{"hamster pup", Profile{Species: SpeciesHamster, BirthDate: birthMonthsAgo(1)}, 3.0},
		{"hamster adult", Profile{Species: SpeciesHamster, BirthDate: birthMonthsAgo(12)}, 2.5},
		{"hamster BCS 7 ignored", Profile{Species: SpeciesHamster, BirthDate: birthMonthsAgo(12), BodyConditionScore: ptr(7)}, 2.5},
		{"hamster BCS 8", Profile{Species: SpeciesHamster, BirthDate: birthMonthsAgo(1), BodyConditionScore: ptr(8)}, 1.6},
		{"rabbit kit", Profile{Species: SpeciesRabbit, BirthDate: birthMonthsAgo(3)}, 2.5},
		{"rabbit adult", Profile{Species: SpeciesRabbit, BirthDate: birthMonthsAgo(18)}, 1.8},
		{"rabbit BCS 8", Profile{Species: SpeciesRabbit, BirthDate: birthMonthsAgo(18), BodyConditionScore: ptr(8)}, 1.4},
		{"rabbit BCS 8 renal", Profile{Species: SpeciesRabbit, BirthDate: birthMonthsAgo(18), BodyConditionScore: ptr(8), Condition: ConditionRenal}, 1.1},
		{"other", Profile{Species: SpeciesOther, BirthDate: birthMonthsAgo(18), Sterilized: true, BodyConditionScore: ptr(9)}, 1.5},
		{"zero value species", Profile{BirthDate: birthMonthsAgo(18)}, 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.p.WeightKg = ptr(1.2)
			assert.InDelta(t, tc.want, multiplierOf(t, tc.p), 1e-9)
		})
	}
}

func TestComputeEnergy_ActivityFactor(t *testing.T) {
	base := Profile{Species: SpeciesDog, WeightKg: ptr(20.0), BirthDate: birthMonthsAgo(36)}
	for act, want := range map[Activity]float64{
		ActivityLow:    1.8 * 0.9,
		ActivityNormal: 1.8,
		ActivityHigh:   1.8 * 1.2,
		"unknown":      1.8,
	} {
		p := base
		p.Activity = act
		assert.InDelta(t, want, multiplierOf(t, p), 1e-9, "activity=%s", act)
	}
}

func TestComputeEnergy_IsDeterministic(t *testing.T) {
	p := Profile{Species: SpeciesCat, WeightKg: ptr(4.2), BirthDate: birthMonthsAgo(40), BodyConditionScore: ptr(5)}
	first, err := ComputeEnergy(p, testToday)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ComputeEnergy(p, testToday)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestParsers(t *testing.T) {
	assert.Equal(t, SpeciesDog, ParseSpecies(" Perro "))
	assert.Equal(t, SpeciesCat, ParseSpecies("CAT"))
	assert.Equal(t, SpeciesRabbit, ParseSpecies("conejo"))
	assert.Equal(t, SpeciesHamster, ParseSpecies("Hamster"))
	assert.Equal(t, SpeciesOther, ParseSpecies("hot dog"))
	assert.Equal(t, SpeciesOther, ParseSpecies(""))

	assert.Equal(t, ActivityLow, ParseActivity("baja"))
	assert.Equal(t, ActivityHigh, ParseActivity("HIGH"))
	assert.Equal(t, ActivityNormal, ParseActivity("sofa"))

	assert.Equal(t, ConditionCardiac, ParseCondition("cardiaco"))
	assert.Equal(t, ConditionRenal, ParseCondition("Renal"))
	assert.Equal(t, ConditionNone, ParseCondition(""))
}
