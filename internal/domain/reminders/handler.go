package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc, petsSvc))
		rr.Get("/", listRemindersHandler(svc, petsSvc))
		rr.Delete("/{reminderID}", deleteReminderHandler(svc, petsSvc))
	})
}

type createReminderRequest struct {
	Text string `json:"text"`
	Date string `json:"date"` // RFC3339, debe ser futura
}

type reminderResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Description Agenda un recordatorio para la mascota. La fecha tiene que ser futura; la notificación la agenda el cliente.
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createReminderRequest true "Texto y fecha (RFC3339)"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "invalid json / date inválida / fecha pasada"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/reminders [post]
func createReminderHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		due, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be RFC3339", http.StatusBadRequest)
			return
		}

		rem, err := svc.Create(r.Context(), p.ID, req.Text, due)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Description Lista los recordatorios ordenados por fecha. Con upcoming=true sólo los que no vencieron.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param upcoming query bool false "Sólo pendientes"
// @Success 200 {array} reminderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/reminders [get]
func listRemindersHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		list := svc.ListByPet
		if r.URL.Query().Get("upcoming") == "true" {
			list = svc.Upcoming
		}
		items, err := list(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toReminderResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deleteReminderHandler godoc
// @Summary Borrar recordatorio
// @Tags reminders
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param reminderID path string true "ID del recordatorio"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "reminder not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/reminders/{reminderID} [delete]
func deleteReminderHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.RequireOwner(w, r, petsSvc)
		if !ok {
			return
		}

		err := svc.Delete(r.Context(), p.ID, chi.URLParam(r, "reminderID"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
			http.Error(w, "reminder not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func toReminderResponse(r Reminder) reminderResponse {
	return reminderResponse{
		ID:        r.ID,
		PetID:     r.PetID,
		Text:      r.Text,
		Date:      r.DueAt,
		CreatedAt: r.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
