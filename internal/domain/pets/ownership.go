package pets

import (
	"context"
	"errors"
)

// ErrForbidden: la mascota existe pero es de otro usuario.
var ErrForbidden = errors.New("forbidden")

// OwnedBy devuelve la mascota solo si pertenece a userID.
// Lo usan los módulos que cuelgan de /pets/{petID} (incidents, weights, reminders)
// para no duplicar el chequeo.
func (s *Service) OwnedBy(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}
