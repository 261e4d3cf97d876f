package router

import (
	"database/sql"
	"net/http"
	"os"

	"medicine-tracker/internal/adapters/storage/file"
	mem "medicine-tracker/internal/adapters/storage/memory"
	pg "medicine-tracker/internal/adapters/storage/postgres"
	"medicine-tracker/internal/domain/export"
	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/patient"
	"medicine-tracker/internal/domain/schedule"
	"medicine-tracker/internal/domain/settings"
	"medicine-tracker/internal/middleware"
	"medicine-tracker/internal/ports/druginfo"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	// Opcional: si viene DB, usa Postgres. Si viene FileStore, archivos JSON.
	// Sin ninguno, in-memory.
	DB        *sql.DB
	FileStore *file.Store

	// Opcional: lookup externo de medicamentos. nil = modo offline (N/A).
	Lookup druginfo.Lookup

	// Opcional: rate limiter por IP. nil = sin límite (dev/tests).
	RateLimiter *middleware.RateLimiter
}

// Services expone los services armados por NewRouter, para que main pueda
// colgarles el scheduler de recordatorios.
type Services struct {
	Medicines *medicines.Service
	History   *history.Service
	Settings  *settings.Service
	Patient   *patient.Service
}

func NewRouter(opts Options) (http.Handler, Services) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	var (
		medsRepo medicines.Repository
		histRepo history.Repository
		setsRepo settings.Repository
		patRepo  patient.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil && opts.FileStore == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	switch {
	case db != nil:
		medsRepo = pg.NewMedicinesRepo(db)
		histRepo = pg.NewHistoryRepo(db)
		setsRepo = pg.NewSettingsRepo(db)
		patRepo = pg.NewPatientRepo(db)
	case opts.FileStore != nil:
		medsRepo = opts.FileStore.Medicines()
		histRepo = opts.FileStore.History()
		setsRepo = opts.FileStore.Settings()
		patRepo = opts.FileStore.Patient()
	default:
		medsRepo = mem.NewMedicinesRepo()
		histRepo = mem.NewHistoryRepo()
		setsRepo = mem.NewSettingsRepo()
		patRepo = mem.NewPatientRepo()
	}

	// Services por módulo
	histSvc := history.NewService(histRepo)
	medsSvc := medicines.NewService(medsRepo, histSvc)
	setsSvc := settings.NewService(setsRepo)
	patSvc := patient.NewService(patRepo)
	exportSvc := export.NewService(medsSvc, histSvc, setsSvc, patSvc)

	// Rutas por módulo
	medicines.RegisterRoutes(r, medsSvc, setsSvc, opts.Lookup)
	schedule.RegisterRoutes(r, medsSvc)
	history.RegisterRoutes(r, histSvc)
	settings.RegisterRoutes(r, setsSvc)
	patient.RegisterRoutes(r, patSvc)
	export.RegisterRoutes(r, exportSvc)

	r.Post("/reset", resetHandler(medsSvc, histSvc, setsSvc, patSvc))

	return r, Services{
		Medicines: medsSvc,
		History:   histSvc,
		Settings:  setsSvc,
		Patient:   patSvc,
	}
}

// resetHandler vacía cronograma, historial y ficha, y vuelve a settings
// default. Irreversible; el confirm es responsabilidad de la UI.
func resetHandler(medsSvc *medicines.Service, histSvc *history.Service, setsSvc *settings.Service, patSvc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := medsSvc.RemoveAll(ctx); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := histSvc.Clear(ctx); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := patSvc.Clear(ctx); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if _, err := setsSvc.Save(ctx, settings.Default()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
