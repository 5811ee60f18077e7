package incidents

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Incident
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Incident{}}
}

func (r *testRepo) Create(ctx context.Context, in Incident) error {
	r.byID[in.ID] = in
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, petID, id string) (Incident, error) {
	in, ok := r.byID[id]
	if !ok || in.PetID != petID {
		return Incident{}, ErrNotFound
	}
	return in, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Incident, error) {
	out := make([]Incident, 0)
	for _, in := range r.byID {
		if in.PetID == petID && filter.Matches(in) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *testRepo) Void(ctx context.Context, petID, id string) error {
	in, err := r.GetByID(ctx, petID, id)
	if err != nil {
		return err
	}
	in.Status = StatusVoided
	r.byID[id] = in
	return nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) error {
	for id, in := range r.byID {
		if in.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		Type:        "Vacuna",
		OccurredAt:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Description: " Antirrábica ",
		VetName:     "Dra. Pérez",
		Signature:   "data:image/png;base64,AAA",
	}
}

func TestService_Create_RequiresSignature(t *testing.T) {
	svc := NewService(newTestRepo())

	in := validInput()
	in.Signature = "  "
	if _, err := svc.Create(context.Background(), "pet-1", in); !errors.Is(err, ErrSignatureRequired) {
		t.Fatalf("expected ErrSignatureRequired, got %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	for name, mutate := range map[string]func(*CreateInput){
		"unknown type":   func(in *CreateInput) { in.Type = "baño" },
		"no description": func(in *CreateInput) { in.Description = "" },
		"no vet":         func(in *CreateInput) { in.VetName = " " },
	} {
		in := validInput()
		mutate(&in)
		if _, err := svc.Create(ctx, "pet-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if _, err := svc.Create(ctx, "", validInput()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without pet, got %v", err)
	}
}

func TestService_Create_NormalizesAndDefaultsDate(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return now }

	in := validInput()
	in.OccurredAt = time.Time{}
	got, err := svc.Create(context.Background(), "pet-1", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Type != TypeVaccine || got.Description != "Antirrábica" || got.Status != StatusActive {
		t.Fatalf("unexpected incident: %+v", got)
	}
	if !got.OccurredAt.Equal(now) || !got.RecordedAt.Equal(now) {
		t.Fatalf("expected dates defaulted to now")
	}
}

func TestService_ListAndVoid(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, "pet-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	second := validInput()
	second.Type = "deworming"
	second.OccurredAt = first.OccurredAt.AddDate(0, 1, 0)
	second.Product = "Pipeta Max"
	if _, err := svc.Create(ctx, "pet-1", second); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	all, err := svc.ListByPet(ctx, "pet-1", ListFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(all) != 2 || all[0].Type != TypeDeworming {
		t.Fatalf("expected newest first, got %+v", all)
	}

	byQuery, _ := svc.ListByPet(ctx, "pet-1", ListFilter{Query: "pipeta"})
	if len(byQuery) != 1 {
		t.Fatalf("expected query match, got %d", len(byQuery))
	}

	voided, err := svc.Void(ctx, "pet-1", first.ID)
	if err != nil {
		t.Fatalf("Void error: %v", err)
	}
	if voided.Status != StatusVoided {
		t.Fatalf("expected voided, got %q", voided.Status)
	}
	if _, err := svc.Void(ctx, "pet-2", first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other pet, got %v", err)
	}

	if err := svc.Purge(ctx, "pet-1"); err != nil {
		t.Fatalf("Purge error: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected incidents purged")
	}
}

func TestListFilter_Matches(t *testing.T) {
	at := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	in := Incident{Type: TypeTreatment, OccurredAt: at, Description: "Antibiótico", VetName: "Dr. Gómez"}

	from := at.AddDate(0, 0, -1)
	to := at.AddDate(0, 0, 1)
	late := at.AddDate(0, 0, 2)

	cases := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{"empty", ListFilter{}, true},
		{"type hit", ListFilter{Types: []Type{TypeVaccine, TypeTreatment}}, true},
		{"type miss", ListFilter{Types: []Type{TypeVaccine}}, false},
		{"range", ListFilter{From: &from, To: &to}, true},
		{"before from", ListFilter{From: &late}, false},
		{"after to", ListFilter{To: &from}, false},
		{"query vet", ListFilter{Query: "GÓMEZ"}, true},
		{"query miss", ListFilter{Query: "vacuna"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(in); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseType_Spanish(t *testing.T) {
	for in, want := range map[string]Type{
		"Vacuna":          TypeVaccine,
		"Desparasitación": TypeDeworming,
		"tratamiento":     TypeTreatment,
		"Internación":     TypeHospitalization,
		"Otros":           TypeOther,
	} {
		got, ok := ParseType(in)
		if !ok || got != want {
			t.Fatalf("ParseType(%q) = %q,%v", in, got, ok)
		}
	}
	if _, ok := ParseType("peluquería"); ok {
		t.Fatalf("expected unknown type")
	}
}
