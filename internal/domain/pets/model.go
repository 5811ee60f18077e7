package pets

import (
	"time"

	"pet-care/internal/domain/nutrition"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el perfil de la mascota, incluidos los datos que alimentan el cálculo nutricional.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string // texto libre; nutrition.ParseSpecies lo normaliza
	Breed   string
	Sex     Sex

	BirthDate *time.Time

	WeightKg        *float64
	FoodKcalPer100g *float64
	Activity        nutrition.Activity
	Sterilized      bool

	// BodyConditionScore 1-9, nil = sin evaluar.
	BodyConditionScore *int
	SpecialCondition   nutrition.Condition

	ImageURI string
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile arma la entrada del asesor. defaultKcal se usa si la mascota no tiene densidad cargada.
func (p Pet) Profile(defaultKcal float64) nutrition.Profile {
	kcal := p.FoodKcalPer100g
	if kcal == nil && defaultKcal > 0 {
		kcal = &defaultKcal
	}
	return nutrition.Profile{
		Species:            nutrition.ParseSpecies(p.Species),
		WeightKg:           p.WeightKg,
		BirthDate:          p.BirthDate,
		Sterilized:         p.Sterilized,
		BodyConditionScore: p.BodyConditionScore,
		Activity:           nutrition.ParseActivity(string(p.Activity)),
		Condition:          nutrition.ParseCondition(string(p.SpecialCondition)),
		FoodKcalPer100g:    kcal,
	}
}
