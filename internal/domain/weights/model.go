package weights

import (
	"time"

	"pet-care/internal/domain/nutrition"
)

// Record es una entrada del historial de peso. El historial es append-only.
type Record struct {
	ID         string
	PetID      string
	WeightKg   float64
	RecordedAt time.Time
}

// Observations convierte el historial al formato del proyector del gráfico,
// respetando el orden recibido.
func Observations(records []Record) []nutrition.WeightObservation {
	out := make([]nutrition.WeightObservation, 0, len(records))
	for _, r := range records {
		out = append(out, nutrition.WeightObservation{RecordedAt: r.RecordedAt, WeightKg: r.WeightKg})
	}
	return out
}
