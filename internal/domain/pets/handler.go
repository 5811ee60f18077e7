package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, feeding FeedingOptions) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		// Recomendación nutricional (con overrides what-if por query)
		pr.Get("/{petID}/feeding", feedingHandler(svc, feeding))
	})
}

// createPetRequest es el cuerpo para dar de alta una mascota.
type createPetRequest struct {
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	Breed     string   `json:"breed"`
	Sex       string   `json:"sex"`
	BirthDate string   `json:"birth_date"` // YYYY-MM-DD opcional
	Weight    *float64 `json:"weight"`
	Notes     string   `json:"notes"`
	Image     string   `json:"image"`
}

// petResponse representa el perfil de la mascota devuelto por la API.
type petResponse struct {
	ID                 string     `json:"id"`
	OwnerUserID        string     `json:"owner_user_id"`
	Name               string     `json:"name"`
	Species            string     `json:"species"`
	Breed              string     `json:"breed"`
	Sex                string     `json:"sex"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	Weight             *float64   `json:"weight,omitempty"`
	FoodKcal           *float64   `json:"food_kcal,omitempty"`
	Activity           string     `json:"activity"`
	Sterilized         bool       `json:"sterilized"`
	BodyConditionScore *int       `json:"bcs,omitempty"`
	SpecialCondition   string     `json:"special_condition"`
	Image              string     `json:"image,omitempty"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// updatePetRequest documenta el PATCH. birth_date, food_kcal y bcs aceptan null para limpiar.
type updatePetRequest struct {
	Name             *string  `json:"name"`
	Species          *string  `json:"species"`
	Breed            *string  `json:"breed"`
	Sex              *string  `json:"sex"`
	BirthDate        *string  `json:"birth_date"` // YYYY-MM-DD
	Notes            *string  `json:"notes"`
	Image            *string  `json:"image"`
	Weight           *float64 `json:"weight"`
	FoodKcal         *float64 `json:"food_kcal"`
	Activity         *string  `json:"activity" enums:"low,normal,high"`
	Sterilized       *bool    `json:"sterilized"`
	BCS              *int     `json:"bcs"`
	SpecialCondition *string  `json:"special_condition" enums:"none,renal,cardiac"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota para el usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / birth_date inválido / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			WeightKg:  req.Weight,
			Notes:     req.Notes,
			ImageURI:  req.Image,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Lista las mascotas del usuario autenticado, por fecha de alta.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver perfil de mascota
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := RequireOwner(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de mascota
// @Description PATCH parcial: los campos ausentes no se tocan. birth_date, food_kcal y bcs aceptan null para limpiarlos. Decimales con coma no se aceptan en JSON (usar punto).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := RequireOwner(w, r, svc)
		if !ok {
			return
		}

		// Dos pasadas: raw para detectar null explícito y struct para los valores.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updatePetRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateProfileInput{
			Name:             req.Name,
			Species:          req.Species,
			Breed:            req.Breed,
			Sex:              req.Sex,
			Notes:            req.Notes,
			ImageURI:         req.Image,
			WeightKg:         req.Weight,
			Activity:         req.Activity,
			Sterilized:       req.Sterilized,
			SpecialCondition: req.SpecialCondition,

			FoodKcalPer100g:    Clearable[float64]{Present: has(raw, "food_kcal"), Value: req.FoodKcal},
			BodyConditionScore: Clearable[int]{Present: has(raw, "bcs"), Value: req.BCS},
		}

		if has(raw, "birth_date") {
			in.BirthDate.Present = true
			if req.BirthDate != nil {
				bd, err := parseBirthDate(*req.BirthDate)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
					return
				}
				in.BirthDate.Value = bd
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), p.ID, in)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota junto con sus incidencias, historial de peso y recordatorios.
// @Tags pets
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := RequireOwner(w, r, svc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), p.ID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RequireOwner resuelve claims, mascota ({petID}) y dueño, y escribe el error HTTP si algo falla.
// Lo usan también los handlers que cuelgan de /pets/{petID}.
func RequireOwner(w http.ResponseWriter, r *http.Request, svc *Service) (Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Pet{}, false
	}

	p, err := svc.OwnedBy(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
	switch {
	case err == nil:
		return p, true
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return Pet{}, false
}

func has(raw map[string]json.RawMessage, key string) bool {
	_, ok := raw[key]
	return ok
}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                 p.ID,
		OwnerUserID:        p.OwnerUserID,
		Name:               p.Name,
		Species:            p.Species,
		Breed:              p.Breed,
		Sex:                string(p.Sex),
		BirthDate:          p.BirthDate,
		Weight:             p.WeightKg,
		FoodKcal:           p.FoodKcalPer100g,
		Activity:           string(p.Activity),
		Sterilized:         p.Sterilized,
		BodyConditionScore: p.BodyConditionScore,
		SpecialCondition:   string(p.SpecialCondition),
		Image:              p.ImageURI,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
