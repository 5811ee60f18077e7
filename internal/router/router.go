package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"pet-care/internal/adapters/storage/blob"
	pg "pet-care/internal/adapters/storage/postgres"
	"pet-care/internal/domain/incidents"
	"pet-care/internal/domain/nutrition"
	"pet-care/internal/domain/pets"
	"pet-care/internal/domain/reminders"
	"pet-care/internal/domain/tags"
	"pet-care/internal/domain/weights"
	"pet-care/internal/middleware"
	"pet-care/internal/platform/logger"
	"pet-care/internal/platform/metrics"
	"pet-care/internal/ports/auth"

	_ "pet-care/docs" // registra la doc de swagger

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Si viene DB usa Postgres; si no, el blob store (Blob nil => memoria).
	DB   *sql.DB
	Blob blob.Store

	Logger  logger.Logger   // nil => Nop
	Metrics *metrics.Metrics // nil => uno nuevo por router

	Locale          string           // es | en
	DefaultFoodKcal float64          // <= 0 => 350
	Now             func() time.Time // reloj del cálculo nutricional
}

type repos struct {
	pets      pets.Repository
	incidents incidents.Repository
	weights   weights.Repository
	reminders reminders.Repository
	tags      tags.Repository
}

func buildRepos(opts Options) repos {
	if opts.DB != nil {
		return repos{
			pets:      pg.NewPetsRepo(opts.DB),
			incidents: pg.NewIncidentsRepo(opts.DB),
			weights:   pg.NewWeightsRepo(opts.DB),
			reminders: pg.NewRemindersRepo(opts.DB),
			tags:      pg.NewTagsRepo(opts.DB),
		}
	}

	store := opts.Blob
	if store == nil {
		store = blob.NewMemoryStore()
	}
	db := blob.NewDB(store)
	return repos{
		pets:      blob.NewPetsRepo(db),
		incidents: blob.NewIncidentsRepo(db),
		weights:   blob.NewWeightsRepo(db),
		reminders: blob.NewRemindersRepo(db),
		tags:      blob.NewTagsRepo(db),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	kcal := opts.DefaultFoodKcal
	if kcal <= 0 {
		kcal = nutrition.DefaultFoodKcalPer100g
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(m.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	rp := buildRepos(opts)

	// Services por módulo
	petsSvc := pets.NewService(rp.pets)
	incidentsSvc := incidents.NewService(rp.incidents)
	weightsSvc := weights.NewService(rp.weights)
	remindersSvc := reminders.NewService(rp.reminders)
	tagsSvc := tags.NewService(rp.tags)

	// Borrar una mascota arrastra sus colecciones
	petsSvc.OnDelete(pets.ByID(incidentsSvc.Purge))
	petsSvc.OnDelete(pets.ByID(weightsSvc.Purge))
	petsSvc.OnDelete(pets.ByID(remindersSvc.Purge))
	petsSvc.OnDelete(func(ctx context.Context, p pets.Pet) error {
		return tagsSvc.PurgePet(ctx, p.OwnerUserID, p.ID)
	})

	// Una lectura sólo puede apuntar a una mascota del mismo dueño
	tagsSvc.CheckPet(func(ctx context.Context, petID, ownerUserID string) error {
		_, err := petsSvc.OwnedBy(ctx, petID, ownerUserID)
		return err
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, pets.FeedingOptions{
		Now:         opts.Now,
		DefaultKcal: kcal,
		Locale:      opts.Locale,
		Observe:     m.FeedingComputed,
	})
	weights.RegisterRoutes(r, weightsSvc, petsSvc)
	incidents.RegisterRoutes(r, incidentsSvc, petsSvc)
	reminders.RegisterRoutes(r, remindersSvc, petsSvc)
	tags.RegisterRoutes(r, tagsSvc)

	log.Info("router ready", map[string]any{
		"storage":      storageName(opts),
		"locale":       opts.Locale,
		"default_kcal": kcal,
		"auth":         opts.AuthVerifier != nil,
	})

	return r
}

func storageName(opts Options) string {
	switch {
	case opts.DB != nil:
		return "postgres"
	case opts.Blob != nil:
		return "blob"
	default:
		return "memory"
	}
}
