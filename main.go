package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/db"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/models"
	"github.com/classpulse/server/realtime"
	"github.com/classpulse/server/router"
	"github.com/classpulse/server/stats"
	"github.com/classpulse/server/store"
)

func main() {
	var err error

	// Load .env if present (dev convenience; real env wins)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database (SQLite by default, PostgreSQL in production)
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// SQLite allows a single writer; serialize through one connection
	if driver == "sqlite" {
		dbConn.SetMaxOpenConns(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	st := store.New(dbConn)

	// Broadcast hub: recomputes stats from the store on subscribe and on
	// each accepted response write
	hub := realtime.NewHub(func(questionID string) (models.Stats, error) {
		question, err := st.GetQuestion(questionID)
		if err != nil {
			return models.Stats{}, err
		}
		responses, err := st.ListResponsesByQuestion(questionID)
		if err != nil {
			return models.Stats{}, err
		}
		return stats.Compute(question, responses), nil
	})

	// Create router
	mux := router.NewRouter(st, hub, cfg)

	// Create server. CORS wraps the whole surface: presenter dashboard and
	// audience pages are served from different origins.
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
