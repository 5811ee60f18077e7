package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// PetCheck confirma que petID es del dueño; devuelve el error del módulo pets si no.
type PetCheck func(ctx context.Context, petID, ownerUserID string) error

type Service struct {
	repo     Repository
	now      func() time.Time
	checkPet PetCheck
}

// CheckPet registra la validación de PetID. Sin check, PetID se guarda tal cual.
func (s *Service) CheckPet(c PetCheck) {
	s.checkPet = c
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	TagData   string
	PetID     string
	Latitude  float64
	Longitude float64
}

func (s *Service) Record(ctx context.Context, ownerUserID string, in RecordInput) (Scan, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	data := strings.TrimSpace(in.TagData)
	if ownerUserID == "" || data == "" {
		return Scan{}, ErrInvalidInput
	}
	if in.Latitude < -90 || in.Latitude > 90 || in.Longitude < -180 || in.Longitude > 180 {
		return Scan{}, ErrInvalidInput
	}

	petID := strings.TrimSpace(in.PetID)
	if petID != "" && s.checkPet != nil {
		if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
			return Scan{}, fmt.Errorf("pet %s: %w", petID, err)
		}
	}

	sc := Scan{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		PetID:       petID,
		TagData:     data,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		ScannedAt:   s.now(),
	}
	if err := s.repo.Append(ctx, sc); err != nil {
		return Scan{}, err
	}
	return sc, nil
}

func (s *Service) List(ctx context.Context, ownerUserID string) ([]Scan, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID))
}

// Latest devuelve la última lectura o ErrNotFound.
func (s *Service) Latest(ctx context.Context, ownerUserID string) (Scan, error) {
	all, err := s.List(ctx, ownerUserID)
	if err != nil {
		return Scan{}, err
	}
	if len(all) == 0 {
		return Scan{}, ErrNotFound
	}
	return all[0], nil
}

// PurgePet borra las lecturas ligadas a una mascota borrada.
func (s *Service) PurgePet(ctx context.Context, ownerUserID, petID string) error {
	return s.repo.DeleteByPet(ctx, strings.TrimSpace(ownerUserID), strings.TrimSpace(petID))
}
