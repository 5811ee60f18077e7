package blob

import (
	"context"
	"time"

	"pet-care/internal/domain/weights"
)

func weightsKey(petID string) string { return "weight_history_" + petID }

type weightRecord struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

type WeightsRepo struct {
	db *DB
}

func NewWeightsRepo(db *DB) *WeightsRepo {
	return &WeightsRepo{db: db}
}

func (r *WeightsRepo) Append(ctx context.Context, rec weights.Record) error {
	return update(ctx, r.db, weightsKey(rec.PetID), func(items []weightRecord) ([]weightRecord, error) {
		return append(items, weightRecord{ID: rec.ID, Date: rec.RecordedAt, Weight: rec.WeightKg}), nil
	})
}

// ListByPet respeta el orden de inserción.
func (r *WeightsRepo) ListByPet(ctx context.Context, petID string) ([]weights.Record, error) {
	items, err := read[weightRecord](ctx, r.db, weightsKey(petID))
	if err != nil {
		return nil, err
	}
	out := make([]weights.Record, 0, len(items))
	for _, it := range items {
		out = append(out, weights.Record{ID: it.ID, PetID: petID, WeightKg: it.Weight, RecordedAt: it.Date})
	}
	return out, nil
}

func (r *WeightsRepo) DeleteByPet(ctx context.Context, petID string) error {
	return remove(ctx, r.db, weightsKey(petID))
}
