// Package i18n arma los textos que ve el usuario (edad, resumen de
// alimentación, plan de peso) en español o inglés.
package i18n

import (
	"strconv"

	"pet-care/internal/domain/nutrition"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Placeholder se muestra cuando un valor no se puede calcular.
const Placeholder = "—"

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

func init() {
	for tag, msgs := range texts {
		for key, text := range msgs {
			mustSet(tag, key, catalog.String(text))
		}
	}

	mustSet(language.Spanish, "age.months", plural.Selectf(1, "%d", "=1", "%d mes", "other", "%d meses"))
	mustSet(language.Spanish, "age.years", plural.Selectf(1, "%d", "=1", "%d año", "other", "%d años"))
	mustSet(language.English, "age.months", plural.Selectf(1, "%d", "=1", "%d month", "other", "%d months"))
	mustSet(language.English, "age.years", plural.Selectf(1, "%d", "=1", "%d year", "other", "%d years"))
}

// Un catálogo mal armado es un bug de programación, no un error de runtime.
func mustSet(tag language.Tag, key string, msg catalog.Message) {
	if err := message.Set(tag, key, msg); err != nil {
		panic("i18n: " + key + ": " + err.Error())
	}
}

// Translator envuelve un message.Printer para un idioma soportado.
type Translator struct {
	tag language.Tag
	p   *message.Printer
}

// New elige el idioma más cercano a lang (ej. "es-AR", "en", "pt" => es).
func New(lang string) *Translator {
	tag, _ := language.MatchStrings(matcher, lang)
	base, _ := tag.Base()
	t := language.Spanish
	if base.String() == "en" {
		t = language.English
	}
	return &Translator{tag: t, p: message.NewPrinter(t)}
}

// Lang devuelve "es" o "en".
func (t *Translator) Lang() string {
	base, _ := t.tag.Base()
	return base.String()
}

func (t *Translator) T(key string, args ...any) string {
	return t.p.Sprintf(key, args...)
}

// Missing es el marcador de "faltan datos" para el cálculo nutricional.
func (t *Translator) Missing() string { return t.T("missing") }

// Age arma "7 meses", "1 año", "2 años y 3 meses". ok=false => Placeholder.
func (t *Translator) Age(span nutrition.AgeSpan, ok bool) string {
	if !ok {
		return Placeholder
	}
	if span.Years == 0 {
		return t.T("age.months", span.Months)
	}
	years := t.T("age.years", span.Years)
	if span.Months == 0 {
		return years
	}
	return t.T("age.join", years, t.T("age.months", span.Months))
}

// FeedingSummary es el texto multilínea con los seis datos numéricos.
func (t *Translator) FeedingSummary(r nutrition.Recommendation) string {
	return t.T("summary.energy", r.Species.Icon(), strconv.Itoa(r.MaintenanceEnergy)) + "\n" +
		t.T("summary.daily", grams(r.DailyGrams)) + "\n" +
		t.T("summary.loss", grams(r.LossGrams)) + "\n" +
		t.T("summary.gain", grams(r.GainGrams)) + "\n" +
		t.T("summary.rer", strconv.Itoa(r.RestingEnergy)) + "\n" +
		t.T("summary.mer", strconv.FormatFloat(r.Multiplier, 'f', 2, 64))
}

// WeightTrend es el texto de dos líneas del plan de peso.
func (t *Translator) WeightTrend(w nutrition.WeightTrend) string {
	return t.T("trend.loss", kg(w.TargetLossPerWeek)) + "\n" +
		t.T("trend.gain", kg(w.TargetGainPerWeek))
}

func grams(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}

func kg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
