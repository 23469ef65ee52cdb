package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"billing-backend/internal/auth"
	"billing-backend/internal/cache"
	"billing-backend/internal/config"
	"billing-backend/internal/database"
	"billing-backend/internal/db"
	"billing-backend/internal/handlers"
	"billing-backend/internal/health"
	h "billing-backend/internal/http"
	"billing-backend/internal/logger"
	"billing-backend/internal/middleware"
	"billing-backend/internal/notify"
	"billing-backend/internal/repositories"
	"billing-backend/internal/services"

	"github.com/rs/zerolog/log"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for the given admin password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("migrations failed")
	}
	cancel()

	if err := cache.Init(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without response cache")
	}

	// Repositories and services
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	pdfService := services.NewPDFService(cfg)
	archiveService := services.NewArchiveService(cfg)
	hub := notify.NewHub()
	invoiceService := services.NewInvoiceService(invoiceRepo, pdfService, archiveService, hub)

	// Auth
	jwtManager := auth.NewJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, jwtManager)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(authHandler, invoiceHandler, healthHandler, hub, authMiddleware)

	// Middleware chain: panic recovery outermost, then CORS, then metrics.
	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("billing backend listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
