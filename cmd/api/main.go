package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/inkpost/inkpost-go/internal/config"
	"github.com/inkpost/inkpost-go/internal/handler"
	"github.com/inkpost/inkpost-go/internal/media"
	"github.com/inkpost/inkpost-go/internal/metrics"
	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/repository"
	"github.com/inkpost/inkpost-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(ctx)

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("index creation failed", "error", err)
		os.Exit(1)
	}
	postRepo := repository.NewPostRepository(db)

	imageStore, err := media.NewStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		slog.Error("minio connection failed", "error", err)
		os.Exit(1)
	}
	coordinator := media.NewCoordinator(imageStore)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, userRepo, coordinator)

	authHandler := handler.NewAuthHandler(authService, userService)
	postHandler := handler.NewPostHandler(postService)
	imageHandler := handler.NewImageHandler(imageStore, coordinator)

	collector := metrics.NewCollector()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(collector.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())
	r.Get("/images/{name}", imageHandler.HandleServe)

	// Identity is resolved for every API route but never rejects on its
	// own; each operation enforces its own authentication rule.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWTSecret))

		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Get("/auth/me", authHandler.HandleMe)
		r.Patch("/auth/status", authHandler.HandleStatus)

		r.Post("/posts", postHandler.HandleCreate)
		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/{post_id}", postHandler.HandleGet)
		r.Put("/posts/{post_id}", postHandler.HandleUpdate)
		r.Delete("/posts/{post_id}", postHandler.HandleDelete)

		r.Put("/post-image", imageHandler.HandleUpload)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
