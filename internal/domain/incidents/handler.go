package incidents

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/incidents", func(ir chi.Router) {
		ir.Post("/", createIncidentHandler(svc, petsSvc))
		ir.Get("/", listIncidentsHandler(svc, petsSvc))
		ir.Get("/{incidentID}", getIncidentHandler(svc, petsSvc))

		// Anular: la incidencia queda en el historial con status voided.
		ir.Post("/{incidentID}/void", voidIncidentHandler(svc, petsSvc))
	})
}

// createIncidentRequest es el cuerpo para registrar una incidencia médica.
type createIncidentRequest struct {
	Type         string `json:"type" enums:"vaccine,deworming,treatment,hospitalization,other"`
	Date         string `json:"date"` // RFC3339 o YYYY-MM-DD; vacío = ahora
	Description  string `json:"description"`
	Product      string `json:"product"`
	ProductImage string `json:"productImage"`
	Vet          string `json:"vet"`
	Signature    string `json:"signature"` // data URL de la firma
}

// incidentResponse representa una incidencia devuelta por la API.
type incidentResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Type         Type      `json:"type"`
	Date         time.Time `json:"date"`
	RecordedAt   time.Time `json:"recorded_at"`
	Description  string    `json:"description"`
	Product      string    `json:"product,omitempty"`
	ProductImage string    `json:"productImage,omitempty"`
	Vet          string    `json:"vet"`
	Signature    string    `json:"signature"`
	Status       Status    `json:"status"`
}

// createIncidentHandler godoc
// @Summary Registrar incidencia médica
// @Description Crea una incidencia firmada (vacuna, desparasitación, tratamiento, internación u otros). Tipo, descripción, veterinario y firma son obligatorios.
// @Tags incidents
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createIncidentRequest true "Datos de la incidencia"
// @Success 201 {object} incidentResponse
// @Failure 400 {string} string "invalid json / date inválida / campos obligatorios / signature required"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/incidents [post]
func createIncidentHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createIncidentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var occurred time.Time
		if strings.TrimSpace(req.Date) != "" {
			t, err := parseTime(req.Date)
			if err != nil {
				http.Error(w, "date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			occurred = t
		}

		inc, err := svc.Create(r.Context(), p.ID, CreateInput{
			Type:            req.Type,
			OccurredAt:      occurred,
			Description:     req.Description,
			Product:         req.Product,
			ProductImageURI: req.ProductImage,
			VetName:         req.Vet,
			Signature:       req.Signature,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toIncidentResponse(inc))
	}
}

// listIncidentsHandler godoc
// @Summary Listar incidencias
// @Description Lista las incidencias de la mascota, más recientes primero. Permite filtrar por tipos, rango de fechas y texto.
// @Tags incidents
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: vaccine,deworming)"
// @Param from query string false "Fecha mínima (RFC3339 o YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (RFC3339 o YYYY-MM-DD)"
// @Param q query string false "Texto libre en descripción/producto/veterinario"
// @Success 200 {array} incidentResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/incidents [get]
func listIncidentsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), p.ID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]incidentResponse, 0, len(items))
		for _, in := range items {
			out = append(out, toIncidentResponse(in))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getIncidentHandler godoc
// @Summary Ver incidencia
// @Tags incidents
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param incidentID path string true "ID de la incidencia"
// @Success 200 {object} incidentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "incident not found"
// @Router /pets/{petID}/incidents/{incidentID} [get]
func getIncidentHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		inc, err := svc.GetByID(r.Context(), p.ID, chi.URLParam(r, "incidentID"))
		if err != nil {
			writeIncidentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toIncidentResponse(inc))
	}
}

// voidIncidentHandler godoc
// @Summary Anular incidencia
// @Description Marca la incidencia como anulada; no se borra del historial.
// @Tags incidents
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param incidentID path string true "ID de la incidencia"
// @Success 200 {object} incidentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "incident not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/incidents/{incidentID}/void [post]
func voidIncidentHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		updated, err := svc.Void(r.Context(), p.ID, chi.URLParam(r, "incidentID"))
		if err != nil {
			writeIncidentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toIncidentResponse(updated))
	}
}

func writeIncidentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
		http.Error(w, "incident not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	var f ListFilter

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			return ListFilter{}, fmt.Errorf("limit must be 1-%d", maxLimit)
		}
		f.Limit = n
	}

	if v := strings.TrimSpace(q.Get("types")); v != "" {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			t, ok := ParseType(part)
			if !ok {
				return ListFilter{}, fmt.Errorf("unknown type %q", strings.TrimSpace(part))
			}
			f.Types = append(f.Types, t)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339 or YYYY-MM-DD")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339 or YYYY-MM-DD")
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return ListFilter{}, errors.New("to must be after from")
	}

	f.Query = strings.TrimSpace(q.Get("q"))
	return f, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toIncidentResponse(in Incident) incidentResponse {
	return incidentResponse{
		ID:           in.ID,
		PetID:        in.PetID,
		Type:         in.Type,
		Date:         in.OccurredAt,
		RecordedAt:   in.RecordedAt,
		Description:  in.Description,
		Product:      in.Product,
		ProductImage: in.ProductImageURI,
		Vet:          in.VetName,
		Signature:    in.Signature,
		Status:       in.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
