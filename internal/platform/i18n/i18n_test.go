package i18n

import (
	"strings"
	"testing"

	"pet-care/internal/domain/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MatchesSupportedLanguages(t *testing.T) {
	assert.Equal(t, "es", New("").Lang())
	assert.Equal(t, "es", New("es-AR").Lang())
	assert.Equal(t, "en", New("en-US").Lang())
	assert.Equal(t, "en", New("EN").Lang())
}

func TestAge_Pluralization(t *testing.T) {
	es := New("es")
	en := New("en")

	assert.Equal(t, "1 mes", es.Age(nutrition.AgeSpan{Months: 1}, true))
	assert.Equal(t, "7 meses", es.Age(nutrition.AgeSpan{Months: 7}, true))
	assert.Equal(t, "1 año", es.Age(nutrition.AgeSpan{Years: 1}, true))
	assert.Equal(t, "2 años y 1 mes", es.Age(nutrition.AgeSpan{Years: 2, Months: 1}, true))

	assert.Equal(t, "0 months", en.Age(nutrition.AgeSpan{}, true))
	assert.Equal(t, "1 year and 6 months", en.Age(nutrition.AgeSpan{Years: 1, Months: 6}, true))

	assert.Equal(t, Placeholder, en.Age(nutrition.AgeSpan{}, false))
}

func TestFeedingSummary_ExposesSixFacts(t *testing.T) {
	daily, loss, gain := 340, 272, 392
	rec := nutrition.Recommendation{
		Species:           nutrition.SpeciesDog,
		RestingEnergy:     662,
		MaintenanceEnergy: 1192,
		Multiplier:        1.8,
		DailyGrams:        &daily,
		LossGrams:         &loss,
		GainGrams:         &gain,
	}

	lines := strings.Split(New("en").FeedingSummary(rec), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "🐶 Daily energy: 1192 kcal", lines[0])
	assert.Equal(t, "🍽️ Recommended grams: 340 g/day", lines[1])
	assert.Equal(t, "🔻 To lose: 272 g/day", lines[2])
	assert.Equal(t, "🔺 To gain: 392 g/day", lines[3])
	assert.Equal(t, "📏 RER: 662 kcal", lines[4])
	assert.Equal(t, "🔧 MER: 1.80x", lines[5])
}

func TestFeedingSummary_NoGrams(t *testing.T) {
	rec := nutrition.Recommendation{Species: nutrition.SpeciesCat, RestingEnergy: 200, MaintenanceEnergy: 280, Multiplier: 1.4}
	out := New("es").FeedingSummary(rec)
	assert.Contains(t, out, "🐱 Energía diaria: 280 kcal")
	assert.Contains(t, out, "Gramos recomendados: — g/día")
}

func TestWeightTrend_Text(t *testing.T) {
	out := New("es").WeightTrend(nutrition.WeightTrend{TargetLossPerWeek: 0.2, TargetGainPerWeek: 0.15})
	assert.Equal(t, "Pérdida recomendada: 0.2 kg / por semana\nAumento recomendado: 0.15 kg / por semana", out)
}
