package reminders

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("reminder not found")

// Reminder es un recordatorio con fecha/hora. La notificación la agenda el cliente.
type Reminder struct {
	ID        string
	PetID     string
	Text      string
	DueAt     time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	// ListByPet devuelve los recordatorios ordenados por DueAt asc.
	ListByPet(ctx context.Context, petID string) ([]Reminder, error)
	Delete(ctx context.Context, petID, id string) error
	DeleteByPet(ctx context.Context, petID string) error
}
