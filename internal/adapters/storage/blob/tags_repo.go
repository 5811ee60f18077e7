package blob

import (
	"context"
	"sort"
	"time"

	"pet-care/internal/domain/tags"
)

func tagsKey(ownerUserID string) string { return "tagRecords_" + ownerUserID }

type scanRecord struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id,omitempty"`
	Data      string    `json:"data"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Date      time.Time `json:"date"`
}

type TagsRepo struct {
	db *DB
}

func NewTagsRepo(db *DB) *TagsRepo {
	return &TagsRepo{db: db}
}

func (r *TagsRepo) Append(ctx context.Context, s tags.Scan) error {
	return update(ctx, r.db, tagsKey(s.OwnerUserID), func(items []scanRecord) ([]scanRecord, error) {
		return append(items, scanRecord{
			ID:        s.ID,
			PetID:     s.PetID,
			Data:      s.TagData,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Date:      s.ScannedAt,
		}), nil
	})
}

func (r *TagsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]tags.Scan, error) {
	items, err := read[scanRecord](ctx, r.db, tagsKey(ownerUserID))
	if err != nil {
		return nil, err
	}
	// Se recorre al revés para que, a igual fecha, quede primero la última insertada.
	out := make([]tags.Scan, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		out = append(out, tags.Scan{
			ID:          it.ID,
			OwnerUserID: ownerUserID,
			PetID:       it.PetID,
			TagData:     it.Data,
			Latitude:    it.Latitude,
			Longitude:   it.Longitude,
			ScannedAt:   it.Date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScannedAt.After(out[j].ScannedAt)
	})
	return out, nil
}

func (r *TagsRepo) DeleteByPet(ctx context.Context, ownerUserID, petID string) error {
	return update(ctx, r.db, tagsKey(ownerUserID), func(items []scanRecord) ([]scanRecord, error) {
		kept := items[:0]
		for _, it := range items {
			if it.PetID != petID {
				kept = append(kept, it)
			}
		}
		return kept, nil
	})
}
