package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/anketa-io/anketa/internal/api"
	"github.com/anketa-io/anketa/internal/logging"
	"github.com/anketa-io/anketa/internal/metrics"
	"github.com/anketa-io/anketa/internal/middleware"
	"github.com/anketa-io/anketa/internal/services"
	"github.com/anketa-io/anketa/internal/storage"
	"github.com/anketa-io/anketa/internal/utils"
)

func main() {
	log := logging.NewLogger("server")

	// Load environment variables from .env file when present.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithField("error", err.Error()).Warn("failed to load .env")
	}

	addr := utils.SafeEnv("ANKETA_ADDR", ":8080")
	commit := os.Getenv("ANKETA_COMMIT")
	buildTime := os.Getenv("ANKETA_BUILD_TIME")

	store, closeStore, err := openStore()
	if err != nil {
		log.WithField("error", err.Error()).Fatal("failed to open store")
	}
	defer closeStore()

	mux := http.NewServeMux()
	api.NewRouter(services.NewSubmissionService(store), logging.NewLogger("intake")).Register(mux)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Anketa API",
			"commit":     commit,
			"build_time": buildTime,
			"utc_time":   time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Wrap mux with CORS, security, cache, request-id, logging and metrics middleware.
	handler := middleware.CORS(mux)
	handler = middleware.SecureHeaders(handler)
	handler = middleware.NoStore(handler)
	handler = middleware.Instrument(handler)
	handler = middleware.AccessLog(logging.NewLogger("http"), handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		log.WithField("addr", addr).Info("intake server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("error", err.Error()).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("error", err.Error()).Error("shutdown error")
	}
	log.Info("server stopped")
}

// openStore selects the append-only backend from ANKETA_STORE: "jsonl"
// (default) or "sqlite".
func openStore() (services.AppendStore, func(), error) {
	switch backend := utils.SafeEnv("ANKETA_STORE", "jsonl"); backend {
	case "jsonl":
		path := utils.SafeEnv("ANKETA_LOG_PATH", "survey_records.jsonl")
		s, err := storage.OpenJSONLStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "sqlite":
		path := utils.SafeEnv("ANKETA_SQLITE_PATH", "anketa.db")
		db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
		if err != nil {
			return nil, nil, err
		}
		s, err := storage.NewSQLiteStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, errors.New("unknown ANKETA_STORE backend: " + backend)
	}
}
