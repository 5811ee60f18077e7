package weights

import "context"

type Repository interface {
	Append(ctx context.Context, r Record) error
	// ListByPet devuelve el historial en orden cronológico (orden de inserción).
	ListByPet(ctx context.Context, petID string) ([]Record, error)
	DeleteByPet(ctx context.Context, petID string) error
}
