package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care/internal/domain/nutrition"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Cleaner borra datos asociados a una mascota ya borrada (incidencias, pesos,
// recordatorios, lecturas de chapita).
type Cleaner func(ctx context.Context, p Pet) error

// ByID adapta un purge que sólo necesita el id de la mascota.
func ByID(purge func(ctx context.Context, petID string) error) Cleaner {
	return func(ctx context.Context, p Pet) error {
		return purge(ctx, p.ID)
	}
}

type Service struct {
	repo     Repository
	now      func() time.Time
	cleaners []Cleaner
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// OnDelete registra limpiezas que corren después de borrar la mascota.
func (s *Service) OnDelete(c Cleaner) {
	s.cleaners = append(s.cleaners, c)
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	WeightKg  *float64
	Notes     string
	ImageURI  string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.WeightKg != nil && !nutrition.ValidWeight(*in.WeightKg) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:               uuid.NewString(),
		OwnerUserID:      ownerUserID,
		Name:             strings.TrimSpace(in.Name),
		Species:          strings.TrimSpace(in.Species),
		Breed:            strings.TrimSpace(in.Breed),
		Sex:              normalizeSex(in.Sex),
		BirthDate:        in.BirthDate,
		WeightKg:         in.WeightKg,
		Activity:         nutrition.ActivityNormal,
		SpecialCondition: nutrition.ConditionNone,
		Notes:            strings.TrimSpace(in.Notes),
		ImageURI:         strings.TrimSpace(in.ImageURI),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Clearable distingue "no enviado" (Present=false) de "enviado null" (Value=nil).
type Clearable[T any] struct {
	Present bool
	Value   *T
}

// UpdateProfileInput es un PATCH: nil = no tocar.
type UpdateProfileInput struct {
	Name     *string
	Species  *string
	Breed    *string
	Sex      *string
	Notes    *string
	ImageURI *string

	BirthDate Clearable[time.Time]

	WeightKg           *float64
	FoodKcalPer100g    Clearable[float64]
	Activity           *string
	Sterilized         *bool
	BodyConditionScore Clearable[int]
	SpecialCondition   *string
}

// UpdateProfile aplica cambios parciales (last write wins).
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = normalizeSex(*in.Sex)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.ImageURI != nil {
		p.ImageURI = strings.TrimSpace(*in.ImageURI)
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}

	if in.WeightKg != nil {
		if !nutrition.ValidWeight(*in.WeightKg) {
			return Pet{}, fmt.Errorf("%w: weight must be > 0 and <= %v", ErrInvalidInput, nutrition.MaxWeightKg)
		}
		w := *in.WeightKg
		p.WeightKg = &w
	}
	if in.FoodKcalPer100g.Present {
		if v := in.FoodKcalPer100g.Value; v != nil && !nutrition.ValidFoodKcal(*v) {
			return Pet{}, fmt.Errorf("%w: kcal must be %v-%v", ErrInvalidInput, nutrition.MinFoodKcalPer100g, nutrition.MaxFoodKcalPer100g)
		}
		p.FoodKcalPer100g = in.FoodKcalPer100g.Value
	}
	if in.Activity != nil {
		p.Activity = nutrition.ParseActivity(*in.Activity)
	}
	if in.Sterilized != nil {
		p.Sterilized = *in.Sterilized
	}
	if in.BodyConditionScore.Present {
		if v := in.BodyConditionScore.Value; v != nil && (*v < 1 || *v > 9) {
			return Pet{}, fmt.Errorf("%w: bcs must be 1-9", ErrInvalidInput)
		}
		p.BodyConditionScore = in.BodyConditionScore.Value
	}
	if in.SpecialCondition != nil {
		p.SpecialCondition = nutrition.ParseCondition(*in.SpecialCondition)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota y luego corre los cleaners registrados.
// Si un cleaner falla, el error se devuelve pero la mascota ya no existe.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	var errs []error
	for _, c := range s.cleaners {
		if err := c(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func normalizeSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "macho", "m":
		return SexMale
	case "female", "hembra", "f":
		return SexFemale
	default:
		return SexUnknown
	}
}
