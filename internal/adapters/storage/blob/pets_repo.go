package blob

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-care/internal/domain/nutrition"
	"pet-care/internal/domain/pets"
)

const petsKey = "pets"

type petRecord struct {
	ID                 string     `json:"id"`
	OwnerUserID        string     `json:"owner_user_id"`
	Name               string     `json:"name"`
	Species            string     `json:"species"`
	Breed              string     `json:"breed"`
	Sex                string     `json:"sex"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	WeightKg           *float64   `json:"weight,omitempty"`
	FoodKcalPer100g    *float64   `json:"food_kcal,omitempty"`
	Activity           string     `json:"activity,omitempty"`
	Sterilized         bool       `json:"sterilized"`
	BodyConditionScore *int       `json:"bcs,omitempty"`
	SpecialCondition   string     `json:"special_condition,omitempty"`
	ImageURI           string     `json:"image,omitempty"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toPetRecord(p pets.Pet) petRecord {
	return petRecord{
		ID:                 p.ID,
		OwnerUserID:        p.OwnerUserID,
		Name:               p.Name,
		Species:            p.Species,
		Breed:              p.Breed,
		Sex:                string(p.Sex),
		BirthDate:          p.BirthDate,
		WeightKg:           p.WeightKg,
		FoodKcalPer100g:    p.FoodKcalPer100g,
		Activity:           string(p.Activity),
		Sterilized:         p.Sterilized,
		BodyConditionScore: p.BodyConditionScore,
		SpecialCondition:   string(p.SpecialCondition),
		ImageURI:           p.ImageURI,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (r petRecord) toPet() pets.Pet {
	return pets.Pet{
		ID:                 r.ID,
		OwnerUserID:        r.OwnerUserID,
		Name:               r.Name,
		Species:            r.Species,
		Breed:              r.Breed,
		Sex:                pets.Sex(r.Sex),
		BirthDate:          r.BirthDate,
		WeightKg:           r.WeightKg,
		FoodKcalPer100g:    r.FoodKcalPer100g,
		Activity:           nutrition.Activity(r.Activity),
		Sterilized:         r.Sterilized,
		BodyConditionScore: r.BodyConditionScore,
		SpecialCondition:   nutrition.Condition(r.SpecialCondition),
		ImageURI:           r.ImageURI,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	return update(ctx, r.db, petsKey, func(items []petRecord) ([]petRecord, error) {
		for _, it := range items {
			if it.ID == p.ID {
				return nil, errors.New("pet already exists")
			}
		}
		return append(items, toPetRecord(p)), nil
	})
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return update(ctx, r.db, petsKey, func(items []petRecord) ([]petRecord, error) {
		for i, it := range items {
			if it.ID == p.ID {
				items[i] = toPetRecord(p)
				return items, nil
			}
		}
		return nil, pets.ErrNotFound
	})
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return update(ctx, r.db, petsKey, func(items []petRecord) ([]petRecord, error) {
		out := items[:0]
		found := false
		for _, it := range items {
			if it.ID == id {
				found = true
				continue
			}
			out = append(out, it)
		}
		if !found {
			return nil, pets.ErrNotFound
		}
		return out, nil
	})
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	items, err := read[petRecord](ctx, r.db, petsKey)
	if err != nil {
		return pets.Pet{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it.toPet(), nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	items, err := read[petRecord](ctx, r.db, petsKey)
	if err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0)
	for _, it := range items {
		if it.OwnerUserID == ownerUserID {
			out = append(out, it.toPet())
		}
	}
	// Orden estable por created_at asc
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
