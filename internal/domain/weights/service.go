package weights

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"pet-care/internal/domain/nutrition"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Add agrega un registro con la fecha actual.
func (s *Service) Add(ctx context.Context, petID string, weightKg float64) (Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Record{}, ErrInvalidInput
	}
	if !nutrition.ValidWeight(weightKg) {
		return Record{}, ErrInvalidInput
	}

	r := Record{
		ID:         uuid.NewString(),
		PetID:      petID,
		WeightKg:   weightKg,
		RecordedAt: s.now(),
	}
	if err := s.repo.Append(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Record, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

// Purge borra todo el historial (se registra como cleaner de pets).
func (s *Service) Purge(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}

// ParseKg acepta "12.5", "12,5" y espacios alrededor.
func ParseKg(s string) (float64, error) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if s == "" {
		return 0, ErrInvalidInput
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !nutrition.ValidWeight(v) {
		return 0, ErrInvalidInput
	}
	return v, nil
}
