package tags

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care/internal/domain/pets"
	"pet-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tags/scans", func(tr chi.Router) {
		tr.Post("/", recordScanHandler(svc))
		tr.Get("/", listScansHandler(svc))
		tr.Get("/latest", latestScanHandler(svc))
	})
}

type recordScanRequest struct {
	Data      string  `json:"data"`
	PetID     string  `json:"pet_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type scanResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id,omitempty"`
	Data      string    `json:"data"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Date      time.Time `json:"date"`
}

// recordScanHandler godoc
// @Summary Registrar lectura de chapita
// @Description Guarda el contenido leído de la chapita con la ubicación del momento.
// @Tags tags
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body recordScanRequest true "Lectura"
// @Success 201 {object} scanResponse
// @Failure 400 {string} string "invalid json / data vacía / coordenadas fuera de rango"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "pet_id de otro dueño"
// @Failure 404 {string} string "pet not found"
// @Router /tags/scans [post]
func recordScanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req recordScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sc, err := svc.Record(r.Context(), claims.UserID, RecordInput{
			TagData:   req.Data,
			PetID:     req.PetID,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		switch {
		case err == nil:
		case errors.Is(err, pets.ErrNotFound):
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		case errors.Is(err, pets.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toScanResponse(sc))
	}
}

// listScansHandler godoc
// @Summary Listar lecturas
// @Description Lecturas del usuario, más recientes primero.
// @Tags tags
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} scanResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /tags/scans [get]
func listScansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]scanResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toScanResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestScanHandler godoc
// @Summary Última lectura
// @Tags tags
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} scanResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "no tag scans"
// @Failure 500 {string} string "internal error"
// @Router /tags/scans/latest [get]
func latestScanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sc, err := svc.Latest(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "no tag scans", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toScanResponse(sc))
	}
}

func toScanResponse(s Scan) scanResponse {
	return scanResponse{
		ID:        s.ID,
		PetID:     s.PetID,
		Data:      s.TagData,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Date:      s.ScannedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
