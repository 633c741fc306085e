package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/internal-tools/org-activity-reports/internal/interfaces"
	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/internal-tools/org-activity-reports/internal/picker"
	"github.com/internal-tools/org-activity-reports/internal/reports"
	"github.com/sirupsen/logrus"
)

// Server exposes the picker and reporting API consumed by the front end.
type Server struct {
	router        *mux.Router
	cache         *picker.Cache
	directory     interfaces.DirectoryClient
	engine        *reports.Engine
	store         interfaces.SnapshotStore
	defaultGroups []models.GroupTag
	snapshotTTL   int

	mu       sync.Mutex
	sessions map[string]*pickerSession
}

// pickerSession wraps a picker session with the per-session lock: the picker
// itself follows a single-threaded event-loop model, so handlers serialize.
type pickerSession struct {
	mu         sync.Mutex
	session    *picker.Session
	lastChange *selectionChange
}

type selectionChange struct {
	IDs     []string        `json:"ids"`
	Members []models.Member `json:"members"`
}

// Options configures a Server.
type Options struct {
	Cache         *picker.Cache
	Directory     interfaces.DirectoryClient
	Engine        *reports.Engine
	Store         interfaces.SnapshotStore
	DefaultGroups []models.GroupTag
	SnapshotTTL   int
}

// New creates the API server and registers routes.
func New(opts Options) *Server {
	groups := opts.DefaultGroups
	if len(groups) == 0 {
		groups = models.CanonicalGroups()
	}
	ttl := opts.SnapshotTTL
	if ttl <= 0 {
		ttl = 180
	}
	s := &Server{
		router:        mux.NewRouter(),
		cache:         opts.Cache,
		directory:     opts.Directory,
		engine:        opts.Engine,
		store:         opts.Store,
		defaultGroups: groups,
		snapshotTTL:   ttl,
		sessions:      map[string]*pickerSession{},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(requestLogger)

	api.HandleFunc("/picker", s.handleOpenPicker).Methods(http.MethodPost)
	api.HandleFunc("/picker/{id}", s.handlePickerView).Methods(http.MethodGet)
	api.HandleFunc("/picker/{id}/query", s.handlePickerQuery).Methods(http.MethodPost)
	api.HandleFunc("/picker/{id}/terminated", s.handlePickerTerminated).Methods(http.MethodPost)
	api.HandleFunc("/picker/{id}/members/{memberID}/toggle", s.handleToggleMember).Methods(http.MethodPost)
	api.HandleFunc("/picker/{id}/groups/{group}/toggle", s.handleToggleGroup).Methods(http.MethodPost)
	api.HandleFunc("/picker/{id}/confirm", s.handlePickerConfirm).Methods(http.MethodPost)
	api.HandleFunc("/picker/{id}/cancel", s.handlePickerCancel).Methods(http.MethodPost)

	api.HandleFunc("/reports", s.handleBuildReport).Methods(http.MethodPost)
	api.HandleFunc("/reports/snapshots", s.handleListSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/reports/snapshots", s.handleSaveSnapshot).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("API server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("request handled")
	})
}
