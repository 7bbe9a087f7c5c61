package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/config"
	"github.com/Lcsmrct/AMBEAUTY/internal/handlers"
	"github.com/Lcsmrct/AMBEAUTY/internal/metrics"
	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/Lcsmrct/AMBEAUTY/internal/store"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Configure slog as early as possible in main.
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init store. DB_PATH=memory runs without a database.
	db, err := openStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "error", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	metrics.Register()

	// 3. Setup Handlers
	authHandler := &handlers.AuthHandler{
		Store:     db,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}
	slotHandler := &handlers.SlotHandler{Store: db}
	bookingHandler := &handlers.BookingHandler{Store: db}
	reviewHandler := &handlers.ReviewHandler{Store: db}
	mediaHandler := &handlers.MediaHandler{Store: db, UploadDir: cfg.UploadDir}

	mux := http.NewServeMux()

	// Uploaded media
	fileServer := http.FileServer(http.Dir(cfg.UploadDir))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads", fileServer))

	// Rate limiter for the credential endpoints (bcrypt is expensive and
	// login is the brute-force target)
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public routes
	mux.HandleFunc("GET /{$}", health)
	mux.HandleFunc("GET /api/health", health)
	mux.HandleFunc("POST /api/auth/register", rateLimiter.Middleware(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter.Middleware(authHandler.Login))
	mux.HandleFunc("GET /api/time-slots", slotHandler.List)
	mux.HandleFunc("GET /api/time-slots/available", slotHandler.ListAvailable)
	mux.HandleFunc("GET /api/reviews", reviewHandler.ListApproved)
	mux.HandleFunc("GET /api/reviews/stats", reviewHandler.Stats)
	mux.HandleFunc("GET /api/media", mediaHandler.List)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Authenticated routes
	mux.HandleFunc("GET /api/auth/me", authHandler.RequireAuth(authHandler.Me))
	mux.HandleFunc("PUT /api/auth/profile", authHandler.RequireAuth(authHandler.UpdateProfile))
	mux.HandleFunc("POST /api/bookings", authHandler.RequireAuth(bookingHandler.Create))
	mux.HandleFunc("GET /api/bookings/me", authHandler.RequireAuth(bookingHandler.MyBookings))
	mux.HandleFunc("POST /api/reviews", authHandler.RequireAuth(reviewHandler.Create))
	mux.HandleFunc("GET /api/reviews/my-eligible-bookings", authHandler.RequireAuth(reviewHandler.EligibleBookings))

	// Admin routes
	mux.HandleFunc("POST /api/time-slots", authHandler.RequireAdmin(slotHandler.Create))
	mux.HandleFunc("PUT /api/time-slots/{id}", authHandler.RequireAdmin(slotHandler.Update))
	mux.HandleFunc("DELETE /api/time-slots/{id}", authHandler.RequireAdmin(slotHandler.Delete))
	mux.HandleFunc("GET /api/bookings", authHandler.RequireAdmin(bookingHandler.ListAll))
	mux.HandleFunc("GET /api/bookings/export", authHandler.RequireAdmin(bookingHandler.Export))
	mux.HandleFunc("PUT /api/bookings/{id}", authHandler.RequireAdmin(bookingHandler.UpdateStatus))
	mux.HandleFunc("GET /api/reviews/pending", authHandler.RequireAdmin(reviewHandler.ListPending))
	mux.HandleFunc("PUT /api/reviews/{id}", authHandler.RequireAdmin(reviewHandler.UpdateStatus))
	mux.HandleFunc("POST /api/media/upload", authHandler.RequireAdmin(mediaHandler.Upload))

	// Middleware chain: Logger -> Security Headers -> CORS -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			handlers.CORSMiddleware(cfg.AllowedOrigin)(mux),
		),
	)

	// 4. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok","message":"AM.BEAUTY API is running"}`))
}

func openStore(dbPath string) (store.Store, error) {
	if dbPath == "memory" {
		slog.Warn("Running with the in-memory store; all data is lost on restart")
		return store.NewMemStore(), nil
	}

	db, err := store.NewSQLStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// seedAdmin creates the configured admin account on first start.
func seedAdmin(db store.Store, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := db.GetUserByEmail(email); err == nil {
		return nil
	} else if err != store.ErrNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:        uuid.NewString(),
		Username:  "admin",
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.CreateUser(admin); err != nil {
		return err
	}
	slog.Info("Admin user created", "email", email)
	return nil
}
