package blob

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pet-care/internal/domain/incidents"
	"pet-care/internal/domain/pets"
	"pet-care/internal/domain/reminders"
	"pet-care/internal/domain/tags"
	"pet-care/internal/domain/weights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends corre cada test contra memoria y contra sqlite en un tempdir.
func backends(t *testing.T) map[string]*DB {
	t.Helper()
	lite, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "pets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })

	return map[string]*DB{
		"memory": NewDB(NewMemoryStore()),
		"sqlite": NewDB(lite),
	}
}

func TestPetsRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)

	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewPetsRepo(db)
			w := 12.5
			bcs := 6

			require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p2", OwnerUserID: "u1", Name: "Luna", CreatedAt: base.Add(time.Hour)}))
			require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Toby", WeightKg: &w, BodyConditionScore: &bcs, CreatedAt: base}))
			require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p3", OwnerUserID: "u2", Name: "Otro", CreatedAt: base}))
			assert.Error(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1"}))

			got, err := repo.GetByID(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Toby", got.Name)
			require.NotNil(t, got.WeightKg)
			assert.InDelta(t, 12.5, *got.WeightKg, 1e-9)
			require.NotNil(t, got.BodyConditionScore)
			assert.Equal(t, 6, *got.BodyConditionScore)

			list, err := repo.ListByOwner(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "p1", list[0].ID)
			assert.Equal(t, "p2", list[1].ID)

			got.Name = "Toby II"
			require.NoError(t, repo.Update(ctx, got))
			got, err = repo.GetByID(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Toby II", got.Name)

			assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "nope"}), pets.ErrNotFound)

			require.NoError(t, repo.Delete(ctx, "p1"))
			_, err = repo.GetByID(ctx, "p1")
			assert.ErrorIs(t, err, pets.ErrNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, "p1"), pets.ErrNotFound)

			list, err = repo.ListByOwner(ctx, "u1")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestWeightsRepo_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewWeightsRepo(db)
			d := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
			require.NoError(t, repo.Append(ctx, weights.Record{ID: "a", PetID: "p1", WeightKg: 10, RecordedAt: d.AddDate(0, 1, 0)}))
			require.NoError(t, repo.Append(ctx, weights.Record{ID: "b", PetID: "p1", WeightKg: 11, RecordedAt: d}))
			require.NoError(t, repo.Append(ctx, weights.Record{ID: "c", PetID: "p2", WeightKg: 3, RecordedAt: d}))

			list, err := repo.ListByPet(ctx, "p1")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "a", list[0].ID)
			assert.Equal(t, "b", list[1].ID)
			assert.Equal(t, "p1", list[1].PetID)

			require.NoError(t, repo.DeleteByPet(ctx, "p1"))
			list, err = repo.ListByPet(ctx, "p1")
			require.NoError(t, err)
			assert.Empty(t, list)

			other, err := repo.ListByPet(ctx, "p2")
			require.NoError(t, err)
			assert.Len(t, other, 1)
		})
	}
}

func TestIncidentsRepo_FilterAndVoid(t *testing.T) {
	ctx := context.Background()
	d := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewIncidentsRepo(db)
			mk := func(id string, typ incidents.Type, days int, desc string) incidents.Incident {
				return incidents.Incident{
					ID: id, PetID: "p1", Type: typ, OccurredAt: d.AddDate(0, 0, days),
					Description: desc, VetName: "Dra. Pérez", Signature: "data:image/png;base64,AAA",
					Status: incidents.StatusActive,
				}
			}
			require.NoError(t, repo.Create(ctx, mk("i1", incidents.TypeVaccine, 0, "Antirrábica")))
			require.NoError(t, repo.Create(ctx, mk("i2", incidents.TypeDeworming, 10, "Pipeta")))
			require.NoError(t, repo.Create(ctx, mk("i3", incidents.TypeVaccine, 20, "Séxtuple")))

			all, err := repo.ListByPet(ctx, "p1", incidents.ListFilter{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "i3", all[0].ID)
			assert.Equal(t, "i1", all[2].ID)

			vac, err := repo.ListByPet(ctx, "p1", incidents.ListFilter{Types: []incidents.Type{incidents.TypeVaccine}, Limit: 1})
			require.NoError(t, err)
			require.Len(t, vac, 1)
			assert.Equal(t, "i3", vac[0].ID)

			from := d.AddDate(0, 0, 5)
			to := d.AddDate(0, 0, 15)
			ranged, err := repo.ListByPet(ctx, "p1", incidents.ListFilter{From: &from, To: &to})
			require.NoError(t, err)
			require.Len(t, ranged, 1)
			assert.Equal(t, "i2", ranged[0].ID)

			q, err := repo.ListByPet(ctx, "p1", incidents.ListFilter{Query: "antirr"})
			require.NoError(t, err)
			require.Len(t, q, 1)
			assert.Equal(t, "i1", q[0].ID)

			require.NoError(t, repo.Void(ctx, "p1", "i2"))
			got, err := repo.GetByID(ctx, "p1", "i2")
			require.NoError(t, err)
			assert.Equal(t, incidents.StatusVoided, got.Status)

			assert.ErrorIs(t, repo.Void(ctx, "p1", "nope"), incidents.ErrNotFound)
			_, err = repo.GetByID(ctx, "p2", "i1")
			assert.ErrorIs(t, err, incidents.ErrNotFound)
		})
	}
}

func TestRemindersRepo_SortedByDue(t *testing.T) {
	ctx := context.Background()
	d := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)

	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRemindersRepo(db)
			require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "late", PetID: "p1", Text: "Vacuna", DueAt: d.AddDate(0, 1, 0)}))
			require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "soon", PetID: "p1", Text: "Pipeta", DueAt: d}))

			list, err := repo.ListByPet(ctx, "p1")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "soon", list[0].ID)
			assert.Equal(t, "late", list[1].ID)

			require.NoError(t, repo.Delete(ctx, "p1", "soon"))
			assert.ErrorIs(t, repo.Delete(ctx, "p1", "soon"), reminders.ErrNotFound)

			list, err = repo.ListByPet(ctx, "p1")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "late", list[0].ID)
		})
	}
}

func TestTagsRepo_NewestFirst(t *testing.T) {
	ctx := context.Background()
	d := time.Date(2026, 10, 10, 18, 0, 0, 0, time.UTC)

	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewTagsRepo(db)
			require.NoError(t, repo.Append(ctx, tags.Scan{ID: "s1", OwnerUserID: "u1", TagData: "TAG-1", Latitude: -34.6, Longitude: -58.4, ScannedAt: d}))
			require.NoError(t, repo.Append(ctx, tags.Scan{ID: "s2", OwnerUserID: "u1", TagData: "TAG-1", ScannedAt: d.Add(time.Minute)}))
			require.NoError(t, repo.Append(ctx, tags.Scan{ID: "s3", OwnerUserID: "u1", TagData: "TAG-2", ScannedAt: d.Add(time.Minute)}))

			list, err := repo.ListByOwner(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "s3", list[0].ID)
			assert.Equal(t, "s2", list[1].ID)
			assert.Equal(t, "s1", list[2].ID)
			assert.InDelta(t, -34.6, list[2].Latitude, 1e-9)

			none, err := repo.ListByOwner(ctx, "u2")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestTagsRepo_DeleteByPet(t *testing.T) {
	ctx := context.Background()
	d := time.Date(2026, 10, 10, 18, 0, 0, 0, time.UTC)

	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewTagsRepo(db)
			require.NoError(t, repo.Append(ctx, tags.Scan{ID: "s1", OwnerUserID: "u1", PetID: "p1", TagData: "TAG-1", ScannedAt: d}))
			require.NoError(t, repo.Append(ctx, tags.Scan{ID: "s2", OwnerUserID: "u1", PetID: "p2", TagData: "TAG-2", ScannedAt: d}))
			require.NoError(t, repo.Append(ctx, tags.Scan{ID: "s3", OwnerUserID: "u1", TagData: "TAG-3", ScannedAt: d}))

			require.NoError(t, repo.DeleteByPet(ctx, "u1", "p1"))

			list, err := repo.ListByOwner(ctx, "u1")
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, s := range list {
				ids = append(ids, s.ID)
			}
			assert.ElementsMatch(t, []string{"s2", "s3"}, ids)
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, NewWeightsRepo(NewDB(first)).Append(ctx, weights.Record{ID: "w1", PetID: "p1", WeightKg: 4.2, RecordedAt: time.Now().UTC()}))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	list, err := NewWeightsRepo(NewDB(second)).ListByPet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "w1", list[0].ID)
}
