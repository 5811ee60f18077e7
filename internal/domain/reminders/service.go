package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPastDate     = errors.New("due date must be in the future")
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

// Create exige texto y una fecha estrictamente futura.
func (s *Service) Create(ctx context.Context, petID, text string, dueAt time.Time) (Reminder, error) {
	petID = strings.TrimSpace(petID)
	text = strings.TrimSpace(text)
	if petID == "" || text == "" || dueAt.IsZero() {
		return Reminder{}, ErrInvalidInput
	}
	now := s.now()
	if !dueAt.After(now) {
		return Reminder{}, ErrPastDate
	}

	r := Reminder{
		ID:        uuid.NewString(),
		PetID:     petID,
		Text:      text,
		DueAt:     dueAt,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Reminder, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

// Upcoming filtra los que todavía no vencieron (para quien agende notificaciones).
func (s *Service) Upcoming(ctx context.Context, petID string) ([]Reminder, error) {
	all, err := s.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Reminder, 0, len(all))
	for _, r := range all {
		if r.DueAt.After(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, petID, id)
}

func (s *Service) Purge(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}
