package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/DGersmv/personal-227-info-sub000/internal/auth"
	"github.com/DGersmv/personal-227-info-sub000/internal/config"
	"github.com/DGersmv/personal-227-info-sub000/internal/handler"
	"github.com/DGersmv/personal-227-info-sub000/internal/middleware"
	"github.com/DGersmv/personal-227-info-sub000/internal/policy"
	"github.com/DGersmv/personal-227-info-sub000/internal/repository/postgres"
	serviceAuthz "github.com/DGersmv/personal-227-info-sub000/internal/service/authz"
	serviceTracking "github.com/DGersmv/personal-227-info-sub000/internal/service/tracking"
)

const version = "0.3.0"

// maxLogFiles bounds the retained timestamped log files when LOG_DIR is set.
const maxLogFiles = 10

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logWriter io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, maxLogFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Permission matrix: built-in defaults, optionally overridden from a
	// policy file. The matrix is frozen for the lifetime of the process.
	matrix := policy.Default()
	if cfg.PolicyFile != "" {
		m, err := policy.LoadFile(cfg.PolicyFile)
		if err != nil {
			log.Fatalf("Failed to load policy file: %v", err)
		}
		matrix = m
		logger.Info("permission matrix loaded", "path", cfg.PolicyFile)
	}

	// JWT verifier backed by the identity provider's JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	actorRepo := postgres.NewActorRepository(repoConfig)
	objectRepo := postgres.NewObjectRepository(repoConfig)
	assignmentRepo := postgres.NewAssignmentRepository(repoConfig)
	resourceRepo := postgres.NewResourceRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Authorization core
	resolver := serviceAuthz.NewResolver(objectRepo, resourceRepo, logger)
	registry := serviceAuthz.NewRegistry(objectRepo, actorRepo, assignmentRepo, txManager, logger)
	authorizer := serviceAuthz.NewAuthorizer(registry, resolver, resourceRepo, matrix, logger)

	// Tracking services
	objectService := serviceTracking.NewObjectService(objectRepo, authorizer, logger)
	resourceService := serviceTracking.NewResourceService(resourceRepo, authorizer, resolver, logger)

	// Handlers
	healthHandler := handler.NewHealthHandler(version)
	objectHandler := handler.NewObjectHandler(objectService, logger)
	assignmentHandler := handler.NewAssignmentHandler(registry, authorizer, logger)
	resourceHandler := handler.NewResourceHandler(resourceService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Check)

	// Object routes
	mux.HandleFunc("GET /api/objects", objectHandler.List)
	mux.HandleFunc("POST /api/objects", objectHandler.Create)
	mux.HandleFunc("GET /api/objects/{id}", objectHandler.Get)
	mux.HandleFunc("DELETE /api/objects/{id}", objectHandler.Delete)

	// Assignment routes
	mux.HandleFunc("GET /api/assignments", assignmentHandler.ListMine)
	mux.HandleFunc("GET /api/objects/{id}/assignments", assignmentHandler.List)
	mux.HandleFunc("PUT /api/objects/{id}/assignments/{actor_id}", assignmentHandler.Upsert)
	mux.HandleFunc("DELETE /api/objects/{id}/assignments/{actor_id}", assignmentHandler.Remove)

	// Nested resource routes
	mux.HandleFunc("POST /api/resources", resourceHandler.Create)
	mux.HandleFunc("GET /api/objects/{id}/resources/{type}", resourceHandler.List)
	mux.HandleFunc("GET /api/resources/{type}/{id}", resourceHandler.Get)
	mux.HandleFunc("PATCH /api/resources/{type}/{id}", resourceHandler.Update)
	mux.HandleFunc("PATCH /api/resources/{type}/{id}/visibility", resourceHandler.SetVisibility)
	mux.HandleFunc("DELETE /api/resources/{type}/{id}", resourceHandler.Delete)

	// Build middleware chain (applied in reverse order, they wrap each other)
	// Order: CORS → RequestID → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.Auth(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID(h)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
