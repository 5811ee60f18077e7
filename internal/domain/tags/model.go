package tags

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("no tag scans")

// Scan es una lectura de la chapita (QR/código) con la ubicación del momento.
type Scan struct {
	ID          string
	OwnerUserID string
	PetID       string // opcional; si viene, es una mascota del mismo dueño
	TagData     string
	Latitude    float64
	Longitude   float64
	ScannedAt   time.Time
}

type Repository interface {
	Append(ctx context.Context, s Scan) error
	// ListByOwner devuelve las lecturas más recientes primero.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Scan, error)
	// DeleteByPet borra las lecturas del dueño asociadas a petID.
	DeleteByPet(ctx context.Context, ownerUserID, petID string) error
}
