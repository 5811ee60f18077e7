package weights

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care/internal/domain/nutrition"
	"pet-care/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/weights", func(wr chi.Router) {
		wr.Post("/", addWeightHandler(svc, petsSvc))
		wr.Get("/", listWeightsHandler(svc, petsSvc))
		wr.Get("/chart", chartHandler(svc, petsSvc))
	})
}

// addWeightRequest: weight puede venir como número o como texto ("12,5").
type addWeightRequest struct {
	Weight json.RawMessage `json:"weight" swaggertype:"string" example:"12,5"`
}

type weightResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Weight     float64   `json:"weight"`
	RecordedAt time.Time `json:"recorded_at"`
}

type chartPointResponse struct {
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Weight     float64   `json:"weight"`
	RecordedAt time.Time `json:"recorded_at"`
}

// chartResponse son las coordenadas listas para dibujar (SVG u otro).
type chartResponse struct {
	Width     float64              `json:"width"`
	Height    float64              `json:"height"`
	Padding   float64              `json:"padding"`
	Empty     bool                 `json:"empty"`
	Min       float64              `json:"min"`
	Max       float64              `json:"max"`
	Points    []chartPointResponse `json:"points"`
	Gridlines []float64            `json:"gridlines"`
	Polyline  string               `json:"polyline"`
}

// addWeightHandler godoc
// @Summary Registrar peso
// @Description Agrega una entrada al historial con la fecha actual y actualiza el peso de la mascota.
// @Tags weights
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body addWeightRequest true "Peso en kg (acepta coma decimal)"
// @Success 201 {object} weightResponse
// @Failure 400 {string} string "invalid json / weight inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/weights [post]
func addWeightHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req addWeightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		kg, err := decodeKg(req.Weight)
		if err != nil {
			http.Error(w, "weight must be a positive number", http.StatusBadRequest)
			return
		}

		rec, err := svc.Add(r.Context(), p.ID, kg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// El peso del perfil sigue al último registro.
		if _, err := petsSvc.UpdateProfile(r.Context(), p.ID, pets.UpdateProfileInput{WeightKg: &kg}); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toWeightResponse(rec))
	}
}

// listWeightsHandler godoc
// @Summary Historial de peso
// @Description Devuelve el historial en orden cronológico (orden de carga).
// @Tags weights
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} weightResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/weights [get]
func listWeightsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]weightResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toWeightResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// chartHandler godoc
// @Summary Gráfico de peso
// @Description Proyecta el historial sobre un área de width x height (padding 20). X se reparte por índice; sin datos, empty=true.
// @Tags weights
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param width query number false "Ancho del área (default 300)"
// @Param height query number false "Alto del área (default 160)"
// @Success 200 {object} chartResponse
// @Failure 400 {string} string "width/height inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/weights/chart [get]
func chartHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		area, err := parseArea(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		chart := nutrition.Project(Observations(items), area)
		out := chartResponse{
			Width:     area.Width,
			Height:    area.Height,
			Padding:   area.Padding,
			Empty:     chart.Empty(),
			Min:       chart.Min,
			Max:       chart.Max,
			Points:    make([]chartPointResponse, 0, len(chart.Points)),
			Gridlines: chart.Gridlines,
			Polyline:  chart.Polyline(),
		}
		if out.Gridlines == nil {
			out.Gridlines = []float64{}
		}
		for _, pt := range chart.Points {
			out.Points = append(out.Points, chartPointResponse{
				X:          pt.X,
				Y:          pt.Y,
				Weight:     pt.Observation.WeightKg,
				RecordedAt: pt.Observation.RecordedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// maxChartSide acota el lienzo; también descarta Inf.
const maxChartSide = 10000

func parseArea(r *http.Request) (nutrition.ChartArea, error) {
	area := nutrition.DefaultChartArea
	q := r.URL.Query()
	for key, dst := range map[string]*float64{"width": &area.Width, "height": &area.Height} {
		v := strings.TrimSpace(q.Get(key))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || f <= area.Padding*2 || f > maxChartSide {
			return nutrition.ChartArea{}, errors.New(key + " must be a number between 40 and 10000")
		}
		*dst = f
	}
	return area, nil
}

func decodeKg(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, ErrInvalidInput
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseKg(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || !nutrition.ValidWeight(f) {
		return 0, ErrInvalidInput
	}
	return f, nil
}

func toWeightResponse(r Record) weightResponse {
	return weightResponse{
		ID:         r.ID,
		PetID:      r.PetID,
		Weight:     r.WeightKg,
		RecordedAt: r.RecordedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
