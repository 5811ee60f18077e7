package incidents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSignatureRequired = errors.New("signature required")
)

const (
	defaultLimit = 50
	maxLimit     = 200
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

type CreateInput struct {
	Type            string
	OccurredAt      time.Time
	Description     string
	Product         string
	ProductImageURI string
	VetName         string
	Signature       string
}

// Create exige tipo, descripción, veterinario y firma confirmada.
func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Incident, error) {
	if strings.TrimSpace(petID) == "" {
		return Incident{}, ErrInvalidInput
	}
	typ, ok := ParseType(in.Type)
	if !ok {
		return Incident{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.VetName) == "" {
		return Incident{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Signature) == "" {
		return Incident{}, ErrSignatureRequired
	}

	now := s.now()
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}

	inc := Incident{
		ID:              uuid.NewString(),
		PetID:           petID,
		Type:            typ,
		OccurredAt:      occurred,
		RecordedAt:      now,
		Description:     strings.TrimSpace(in.Description),
		Product:         strings.TrimSpace(in.Product),
		ProductImageURI: strings.TrimSpace(in.ProductImageURI),
		VetName:         strings.TrimSpace(in.VetName),
		Signature:       in.Signature,
		Status:          StatusActive,
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return Incident{}, err
	}
	return inc, nil
}

func (s *Service) GetByID(ctx context.Context, petID, id string) (Incident, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Incident{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, petID, id)
}

// ListByPet normaliza el límite (1-200, default 50) antes de ir al repo.
func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Incident, error) {
	if filter.Limit <= 0 || filter.Limit > maxLimit {
		filter.Limit = defaultLimit
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

// Void marca la incidencia como anulada (no se borra).
func (s *Service) Void(ctx context.Context, petID, id string) (Incident, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Incident{}, ErrInvalidInput
	}
	if err := s.repo.Void(ctx, petID, id); err != nil {
		return Incident{}, err
	}
	return s.repo.GetByID(ctx, petID, id)
}

func (s *Service) Purge(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}

// Matches aplica el filtro en memoria. Lo usan los adapters que no filtran en la consulta.
func (f ListFilter) Matches(in Incident) bool {
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if in.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && in.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && in.OccurredAt.After(*f.To) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		hay := strings.ToLower(in.Description + " " + in.Product + " " + in.VetName)
		if !strings.Contains(hay, strings.ToLower(q)) {
			return false
		}
	}
	return true
}
