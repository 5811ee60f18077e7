package pets

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care/internal/domain/nutrition"
	"pet-care/internal/platform/i18n"
)

// FeedingOptions configura el endpoint de recomendación.
type FeedingOptions struct {
	Now         func() time.Time
	DefaultKcal float64
	Locale      string
	// Observe recibe (especie, outcome) por cada cálculo; puede ser nil.
	Observe func(species, outcome string)
}

func (o FeedingOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o FeedingOptions) observe(species nutrition.Species, outcome string) {
	if o.Observe != nil {
		o.Observe(string(species), outcome)
	}
}

// Outcomes que se reportan a Observe.
const (
	FeedingOK      = "ok"
	FeedingNoGrams = "no_grams"
	FeedingMissing = "missing"
)

type weightTrendResponse struct {
	TargetLossPerWeek float64 `json:"target_loss_per_week"`
	TargetGainPerWeek float64 `json:"target_gain_per_week"`
	Text              string  `json:"text"`
}

// feedingResponse es la recomendación calculada; no se persiste.
type feedingResponse struct {
	PetID             string               `json:"pet_id"`
	Species           string               `json:"species"`
	Icon              string               `json:"icon"`
	Lang              string               `json:"lang"`
	Age               string               `json:"age"`
	AgeMonths         *int                 `json:"age_months,omitempty"`
	RestingEnergy     int                  `json:"resting_energy"`
	MaintenanceEnergy int                  `json:"maintenance_energy"`
	Multiplier        float64              `json:"multiplier"`
	DailyGrams        *int                 `json:"daily_grams"`
	LossGrams         *int                 `json:"loss_grams"`
	GainGrams         *int                 `json:"gain_grams"`
	WeightTrend       *weightTrendResponse `json:"weight_trend,omitempty"`
	Summary           string               `json:"summary"`
}

// feedingMissingResponse se devuelve con 422 cuando faltan peso o fecha de nacimiento.
type feedingMissingResponse struct {
	PetID   string `json:"pet_id"`
	Missing bool   `json:"missing"`
	Message string `json:"message"`
	Age     string `json:"age"`
}

// feedingHandler godoc
// @Summary Recomendación de alimentación
// @Description Calcula RER, MER y gramos diarios para la mascota. Los query params pisan los valores guardados sin persistirlos (simulación). Los decimales aceptan coma. Idioma: `lang` o `Accept-Language` (es por defecto).
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param weight query string false "Peso en kg (ej: 12,5)"
// @Param kcal query string false "Densidad del alimento en kcal/100 g; 0 = sin gramos"
// @Param activity query string false "low, normal o high"
// @Param sterilized query bool false "Esterilizado"
// @Param bcs query int false "Condición corporal 1-9"
// @Param condition query string false "none, renal o cardiac"
// @Param lang query string false "es o en"
// @Success 200 {object} feedingResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 422 {object} feedingMissingResponse
// @Router /pets/{petID}/feeding [get]
func feedingHandler(svc *Service, opts FeedingOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := RequireOwner(w, r, svc)
		if !ok {
			return
		}

		profile := p.Profile(opts.DefaultKcal)
		if err := applyOverrides(&profile, r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		tr := i18n.New(pickLang(r, opts.Locale))
		today := opts.now()
		span, hasAge := nutrition.AgeOf(profile.BirthDate, today)
		ageText := tr.Age(span, hasAge)

		rec, err := nutrition.NewAdvisorAt(today).Advise(profile)
		if errors.Is(err, nutrition.ErrInsufficientData) {
			opts.observe(profile.Species, FeedingMissing)
			writeJSON(w, http.StatusUnprocessableEntity, feedingMissingResponse{
				PetID:   p.ID,
				Missing: true,
				Message: tr.Missing(),
				Age:     ageText,
			})
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		outcome := FeedingOK
		if !rec.HasGrams() {
			outcome = FeedingNoGrams
		}
		opts.observe(rec.Species, outcome)

		out := feedingResponse{
			PetID:             p.ID,
			Species:           string(rec.Species),
			Icon:              rec.Species.Icon(),
			Lang:              tr.Lang(),
			Age:               ageText,
			RestingEnergy:     rec.RestingEnergy,
			MaintenanceEnergy: rec.MaintenanceEnergy,
			Multiplier:        rec.Multiplier,
			DailyGrams:        rec.DailyGrams,
			LossGrams:         rec.LossGrams,
			GainGrams:         rec.GainGrams,
			Summary:           tr.FeedingSummary(rec),
		}
		if months, ok := nutrition.MonthsBetween(profile.BirthDate, today); ok {
			out.AgeMonths = &months
		}
		if trend, ok := nutrition.PlanWeightTrend(profile.WeightKg); ok {
			out.WeightTrend = &weightTrendResponse{
				TargetLossPerWeek: trend.TargetLossPerWeek,
				TargetGainPerWeek: trend.TargetGainPerWeek,
				Text:              tr.WeightTrend(trend),
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// applyOverrides pisa el perfil con los query params presentes.
func applyOverrides(p *nutrition.Profile, r *http.Request) error {
	q := r.URL.Query()

	if v := q.Get("weight"); v != "" {
		f, err := parseDecimal(v)
		if err != nil || !nutrition.ValidWeight(f) {
			return fmt.Errorf("%w: weight", ErrInvalidInput)
		}
		p.WeightKg = &f
	}
	if v := q.Get("kcal"); v != "" {
		// 0 es válido: pide la recomendación sin gramos
		f, err := parseDecimal(v)
		if err != nil || (f != 0 && !nutrition.ValidFoodKcal(f)) {
			return fmt.Errorf("%w: kcal", ErrInvalidInput)
		}
		p.FoodKcalPer100g = &f
	}
	if v := q.Get("activity"); v != "" {
		p.Activity = nutrition.ParseActivity(v)
	}
	if v := q.Get("sterilized"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: sterilized", ErrInvalidInput)
		}
		p.Sterilized = b
	}
	if v := q.Get("bcs"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 || n > 9 {
			return fmt.Errorf("%w: bcs must be 1-9", ErrInvalidInput)
		}
		p.BodyConditionScore = &n
	}
	if v := q.Get("condition"); v != "" {
		p.Condition = nutrition.ParseCondition(v)
	}
	return nil
}

// parseDecimal acepta "12.5" y "12,5". NaN e Inf no son valores válidos.
func parseDecimal(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidInput
	}
	return f, nil
}

func pickLang(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get("lang")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	return fallback
}
