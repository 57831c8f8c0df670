package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"printshop/internal/config"
	"printshop/internal/database"
	"printshop/internal/handler"
	"printshop/internal/mw"
	"printshop/internal/repository"
	"printshop/internal/service"
	"printshop/internal/worker"
)

const rateLimitBurst = 10

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("service", "printshop").Logger()

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := database.InitSchema(cfg.DatabaseURI); err != nil {
		log.Fatal().Err(err).Msg("failed to init DB schema")
	}

	db, err := database.NewDB(context.Background(), cfg.DatabaseURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer database.CloseDB(db)

	// Services
	orderRepo := repository.NewOrderRepository(db)
	orderSvc := service.NewOrderService(orderRepo)
	paymentSvc := service.NewPaymentService(orderRepo)
	earningsSvc := service.NewEarningsService(orderRepo)
	files := service.NewFileStore(cfg.UploadDir)
	progressor := service.NewRandomProgressor(orderRepo, cfg.AdvanceProbability)

	authSvc, err := service.NewAuthService(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init admin auth")
	}
	if !authSvc.Enabled() {
		log.Warn().Msg("ADMIN_PASSWORD is empty, admin routes are unauthenticated")
	}

	var statusSvc *service.StatusService
	switch cfg.StatusMode {
	case config.StatusModeLookup:
		statusSvc = service.NewStatusService(orderRepo, nil, false)
	case config.StatusModeWorker:
		statusSvc = service.NewStatusService(orderRepo, nil, true)
	default:
		statusSvc = service.NewStatusService(orderRepo, progressor, true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Public routes
	r.Get("/api/status/{orderId}", handler.StatusHandler(statusSvc))
	r.Get("/api/orders/{orderId}/ticket", handler.TicketHandler(orderSvc, cfg.PublicURL))

	r.Group(func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			limiter := mw.NewRateLimiter(cfg.RateLimitRPS, rateLimitBurst)
			go limiter.StartCleanup(ctx, time.Minute)
			r.Use(limiter.Handler)
		}

		r.Post("/api/upload", handler.UploadHandler(files, cfg.MaxUploadMB<<20))
		r.Post("/api/orders", handler.CreateOrderHandler(orderSvc))
		r.Post("/api/payment", handler.PaymentHandler(paymentSvc))
		r.Post("/api/admin/login", handler.AdminLoginHandler(authSvc, cfg.JWTSecret))
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		if authSvc.Enabled() {
			r.Use(mw.AdminAuth(cfg.JWTSecret))
		}

		r.Get("/api/jobs", handler.ListJobsHandler(orderSvc))
		r.Put("/api/jobs/{orderId}/status", handler.UpdateJobStatusHandler(orderSvc))
		r.Get("/api/earnings", handler.EarningsHandler(earningsSvc))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if cfg.StatusMode == config.StatusModeWorker {
		go worker.NewProgressWorker(orderSvc, progressor, cfg.ProgressInterval).Start(ctx)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	log.Info().Str("addr", cfg.RunAddress).Str("status_mode", cfg.StatusMode).Msg("starting server")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info().Msg("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	cancel() // stop worker and limiter cleanup

	log.Info().Msg("server stopped")
}
