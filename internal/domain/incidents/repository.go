package incidents

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("incident not found")

type Repository interface {
	Create(ctx context.Context, in Incident) error
	GetByID(ctx context.Context, petID, id string) (Incident, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Incident, error)
	Void(ctx context.Context, petID, id string) error
	DeleteByPet(ctx context.Context, petID string) error
}

type ListFilter struct {
	Types []Type
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
}
