package reminders

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Reminder
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Reminder{}}
}

func (r *testRepo) Create(ctx context.Context, rem Reminder) error {
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Reminder, error) {
	out := make([]Reminder, 0)
	for _, rem := range r.byID {
		if rem.PetID == petID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, petID, id string) error {
	rem, ok := r.byID[id]
	if !ok || rem.PetID != petID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) error {
	for id, rem := range r.byID {
		if rem.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

func TestService_Create_FutureOnly(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := svc.Create(ctx, "pet-1", "Vacuna", now); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate for now, got %v", err)
	}
	if _, err := svc.Create(ctx, "pet-1", "Vacuna", now.Add(-time.Minute)); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate for past, got %v", err)
	}
	if _, err := svc.Create(ctx, "pet-1", "  ", now.Add(time.Hour)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty text, got %v", err)
	}

	rem, err := svc.Create(ctx, "pet-1", " Vacuna anual ", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rem.Text != "Vacuna anual" || !rem.CreatedAt.Equal(now) {
		t.Fatalf("unexpected reminder: %+v", rem)
	}
}

func TestService_Upcoming(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	for _, d := range []time.Duration{72 * time.Hour, time.Hour, 24 * time.Hour} {
		if _, err := svc.Create(ctx, "pet-1", "r", now.Add(d)); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	// pasan dos días: el de una hora y el de 24h ya vencieron
	svc.now = func() time.Time { return now.Add(48 * time.Hour) }

	all, _ := svc.ListByPet(ctx, "pet-1")
	if len(all) != 3 || !all[0].DueAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected 3 sorted reminders, got %+v", all)
	}
	up, err := svc.Upcoming(ctx, "pet-1")
	if err != nil {
		t.Fatalf("Upcoming error: %v", err)
	}
	if len(up) != 1 || !up[0].DueAt.Equal(now.Add(72*time.Hour)) {
		t.Fatalf("expected only the 72h reminder, got %+v", up)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	rem, err := svc.Create(ctx, "pet-1", "Baño", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.Delete(ctx, "pet-2", rem.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other pet, got %v", err)
	}
	if err := svc.Delete(ctx, "pet-1", rem.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(ctx, "pet-1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
