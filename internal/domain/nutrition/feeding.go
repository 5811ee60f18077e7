package nutrition

import (
	"math"
	"time"
)

const (
	lossFactor = 0.8  // ~20% déficit
	gainFactor = 1.15 // ~15% superávit
)

// Feeding son los gramos diarios recomendados y sus variantes para bajar/subir.
type Feeding struct {
	DailyGrams int
	LossGrams  int
	GainGrams  int
}

// PlanFeeding convierte MER (kcal/día) y densidad (kcal/100g) en gramos.
// ok=false si la densidad es cero o negativa, o si los gramos no son representables.
func PlanFeeding(mer, kcalPer100g float64) (Feeding, bool) {
	if kcalPer100g <= 0 || math.IsNaN(kcalPer100g) {
		return Feeding{}, false
	}
	grams := mer / kcalPer100g * 100
	daily, ok1 := roundInt(grams)
	loss, ok2 := roundInt(grams * lossFactor)
	gain, ok3 := roundInt(grams * gainFactor)
	if !ok1 || !ok2 || !ok3 {
		return Feeding{}, false
	}
	return Feeding{DailyGrams: daily, LossGrams: loss, GainGrams: gain}, true
}

// Recommendation es la salida del asesor; no se persiste.
type Recommendation struct {
	Species Species

	RestingEnergy     int
	MaintenanceEnergy int
	Multiplier        float64

	// nil cuando no hay densidad energética utilizable ("—" en la UI).
	DailyGrams *int
	LossGrams  *int
	GainGrams  *int
}

// HasGrams indica si la recomendación trae gramos.
func (r Recommendation) HasGrams() bool { return r.DailyGrams != nil }

// Advisor junta edad, energía y gramos. Es puro salvo por el reloj inyectado.
type Advisor struct {
	now func() time.Time
}

func NewAdvisor() *Advisor {
	return &Advisor{now: time.Now}
}

// NewAdvisorAt fija "hoy" (tests, CLI con --today).
func NewAdvisorAt(today time.Time) *Advisor {
	return &Advisor{now: func() time.Time { return today }}
}

// Advise arma la recomendación completa para el perfil.
func (a *Advisor) Advise(p Profile) (Recommendation, error) {
	e, err := ComputeEnergy(p, a.now())
	if err != nil {
		return Recommendation{}, err
	}

	// Un peso absurdo da kcal fuera de rango: se trata como dato insuficiente.
	rer, ok := roundInt(e.RER)
	if !ok {
		return Recommendation{}, ErrInsufficientData
	}
	mer, ok := roundInt(e.MER)
	if !ok {
		return Recommendation{}, ErrInsufficientData
	}

	rec := Recommendation{
		Species:           p.Species,
		RestingEnergy:     rer,
		MaintenanceEnergy: mer,
		Multiplier:        e.Multiplier(),
	}

	kcal := DefaultFoodKcalPer100g
	if p.FoodKcalPer100g != nil {
		kcal = *p.FoodKcalPer100g
	}
	if f, ok := PlanFeeding(e.MER, kcal); ok {
		rec.DailyGrams = &f.DailyGrams
		rec.LossGrams = &f.LossGrams
		rec.GainGrams = &f.GainGrams
	}
	return rec, nil
}

// Today expone el reloj del asesor (para calcular la edad con la misma fecha).
func (a *Advisor) Today() time.Time { return a.now() }
