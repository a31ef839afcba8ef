package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/course-api/internal/config"
	"github.com/crucial707/course-api/internal/db"
	"github.com/crucial707/course-api/internal/handlers"
	"github.com/crucial707/course-api/internal/middleware"
	"github.com/crucial707/course-api/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	// Connect to database FIRST
	database, err := db.Connect(cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	slog.Info("Successfully connected to the database")

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	r := newRouter(database, cfg)

	// Start server LAST
	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("Starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("Starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// newRouter wires repositories, handlers, and the middleware chain.
func newRouter(database *sql.DB, cfg config.Config) chi.Router {
	userRepo := repo.NewUserRepo(database)
	courseRepo := repo.NewCourseRepo(database)

	auth := middleware.BasicAuth(userRepo)
	courseHandler := &handlers.CourseHandler{Repo: courseRepo}
	userHandler := &handlers.UserHandler{Repo: userRepo, Courses: courseRepo}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer(cfg.EnableErrorLogging))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(limiter.Middleware)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// Any unmatched request gets the same body, whatever the method.
	r.NotFound(handlers.RouteNotFound)
	r.MethodNotAllowed(handlers.RouteNotFound)

	r.Get("/", handlers.Welcome)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/courses", courseHandler.Routes(auth))
	r.Mount("/api/users", userHandler.Routes(auth))

	return r
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
