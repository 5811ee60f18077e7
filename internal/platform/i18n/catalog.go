package i18n

import "golang.org/x/text/language"

// Los números llegan ya formateados (%s) para no depender del formato local de dígitos.
var texts = map[language.Tag]map[string]string{
	language.Spanish: {
		"missing":        "Faltan datos (peso o fecha de nacimiento)",
		"age.join":       "%s y %s",
		"summary.energy": "%s Energía diaria: %s kcal",
		"summary.daily":  "🍽️ Gramos recomendados: %s g/día",
		"summary.loss":   "🔻 Para bajar: %s g/día",
		"summary.gain":   "🔺 Para subir: %s g/día",
		"summary.rer":    "📏 RER: %s kcal",
		"summary.mer":    "🔧 MER: %sx",
		"trend.loss":     "Pérdida recomendada: %s kg / por semana",
		"trend.gain":     "Aumento recomendado: %s kg / por semana",
	},
	language.English: {
		"missing":        "Missing data (weight or birth date)",
		"age.join":       "%s and %s",
		"summary.energy": "%s Daily energy: %s kcal",
		"summary.daily":  "🍽️ Recommended grams: %s g/day",
		"summary.loss":   "🔻 To lose: %s g/day",
		"summary.gain":   "🔺 To gain: %s g/day",
		"summary.rer":    "📏 RER: %s kcal",
		"summary.mer":    "🔧 MER: %sx",
		"trend.loss":     "Recommended loss: %s kg / per week",
		"trend.gain":     "Recommended gain: %s kg / per week",
	},
}
