package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/schoolforge/schoolforge-api/internal/assessments"
	assessmentspg "github.com/schoolforge/schoolforge-api/internal/assessments/postgres"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	authpg "github.com/schoolforge/schoolforge-api/internal/auth/postgres"
	"github.com/schoolforge/schoolforge-api/internal/auth/token"
	"github.com/schoolforge/schoolforge-api/internal/config"
	"github.com/schoolforge/schoolforge-api/internal/projects"
	projectspg "github.com/schoolforge/schoolforge-api/internal/projects/postgres"
)

// application holds the initialized dependencies of the server. Everything is
// wired once at startup; handlers only see interfaces.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	db               *sql.DB
	userStore        auth.UserStore
	projectReader    projects.Reader
	assessmentStore  assessments.Store
	tokenService     token.Service
	passwordVerifier token.PasswordVerifier
	accessService    assessments.AccessService
	metricsRegistry  *prometheus.Registry
}

// newApplication wires the application dependency graph from the loaded
// configuration and an open database handle.
func newApplication(cfg *config.Config, appLogger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := authpg.NewUserStore(db, appLogger)
	projectStore := projectspg.NewStore(db, appLogger)
	assessmentStore := assessmentspg.NewAssessmentStore(db, appLogger)

	tokenService, err := token.NewService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// The gateway is the only road from assessments into the projects domain.
	gateway := assessments.NewProjectGateway(projectStore)
	accessService, err := assessments.NewAccessService(
		gateway,
		appLogger,
		assessments.NewMetrics(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           appLogger,
		db:               db,
		userStore:        userStore,
		projectReader:    projectStore,
		assessmentStore:  assessmentStore,
		tokenService:     tokenService,
		passwordVerifier: token.NewBcryptVerifier(),
		accessService:    accessService,
		metricsRegistry:  registry,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
