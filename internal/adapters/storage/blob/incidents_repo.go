package blob

import (
	"context"
	"sort"
	"time"

	"pet-care/internal/domain/incidents"
)

func incidentsKey(petID string) string { return "incidents_" + petID }

type incidentRecord struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
	RecordedAt   time.Time `json:"recorded_at"`
	Description  string    `json:"description"`
	Product      string    `json:"product,omitempty"`
	ProductImage string    `json:"productImage,omitempty"`
	Vet          string    `json:"vet"`
	Signature    string    `json:"signature"`
	Status       string    `json:"status"`
}

func toIncidentRecord(in incidents.Incident) incidentRecord {
	return incidentRecord{
		ID:           in.ID,
		Type:         string(in.Type),
		Date:         in.OccurredAt,
		RecordedAt:   in.RecordedAt,
		Description:  in.Description,
		Product:      in.Product,
		ProductImage: in.ProductImageURI,
		Vet:          in.VetName,
		Signature:    in.Signature,
		Status:       string(in.Status),
	}
}

func (r incidentRecord) toIncident(petID string) incidents.Incident {
	status := incidents.Status(r.Status)
	if status == "" {
		status = incidents.StatusActive
	}
	return incidents.Incident{
		ID:              r.ID,
		PetID:           petID,
		Type:            incidents.Type(r.Type),
		OccurredAt:      r.Date,
		RecordedAt:      r.RecordedAt,
		Description:     r.Description,
		Product:         r.Product,
		ProductImageURI: r.ProductImage,
		VetName:         r.Vet,
		Signature:       r.Signature,
		Status:          status,
	}
}

type IncidentsRepo struct {
	db *DB
}

func NewIncidentsRepo(db *DB) *IncidentsRepo {
	return &IncidentsRepo{db: db}
}

func (r *IncidentsRepo) Create(ctx context.Context, in incidents.Incident) error {
	return update(ctx, r.db, incidentsKey(in.PetID), func(items []incidentRecord) ([]incidentRecord, error) {
		return append(items, toIncidentRecord(in)), nil
	})
}

func (r *IncidentsRepo) GetByID(ctx context.Context, petID, id string) (incidents.Incident, error) {
	items, err := read[incidentRecord](ctx, r.db, incidentsKey(petID))
	if err != nil {
		return incidents.Incident{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it.toIncident(petID), nil
		}
	}
	return incidents.Incident{}, incidents.ErrNotFound
}

// ListByPet ordena por fecha de ocurrencia desc y aplica el filtro en memoria.
func (r *IncidentsRepo) ListByPet(ctx context.Context, petID string, filter incidents.ListFilter) ([]incidents.Incident, error) {
	items, err := read[incidentRecord](ctx, r.db, incidentsKey(petID))
	if err != nil {
		return nil, err
	}
	out := make([]incidents.Incident, 0, len(items))
	for _, it := range items {
		in := it.toIncident(petID)
		if filter.Matches(in) {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *IncidentsRepo) Void(ctx context.Context, petID, id string) error {
	return update(ctx, r.db, incidentsKey(petID), func(items []incidentRecord) ([]incidentRecord, error) {
		for i, it := range items {
			if it.ID == id {
				items[i].Status = string(incidents.StatusVoided)
				return items, nil
			}
		}
		return nil, incidents.ErrNotFound
	})
}

func (r *IncidentsRepo) DeleteByPet(ctx context.Context, petID string) error {
	return remove(ctx, r.db, incidentsKey(petID))
}
