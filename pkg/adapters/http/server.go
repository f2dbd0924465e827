package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/aretw0/datatree"
	"github.com/aretw0/datatree/internal/query"
	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/ports"
	"github.com/aretw0/datatree/pkg/seed"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// TreeFactory builds entity trees from seeds.
type TreeFactory interface {
	Create(s domain.Seed) (domain.Tree, error)
}

// Server exposes tree builds and stored snapshots over HTTP.
type Server struct {
	Factory TreeFactory
	Store   ports.SnapshotStore
	Logger  *slog.Logger
}

// NewHandler creates a new HTTP handler for the factory and snapshot store.
func NewHandler(factory TreeFactory, store ports.SnapshotStore, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		Factory: factory,
		Store:   store,
		Logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Route("/trees", func(r chi.Router) {
		r.Post("/", server.CreateTree)
		r.Get("/", server.ListTrees)
		r.Get("/{id}", server.GetTree)
		r.Get("/{id}/query", server.QueryTree)
		r.Delete("/{id}", server.DeleteTree)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateTree handles POST /trees. The body is a seed document (JSON, or YAML
// when Content-Type says so). With ?id= the built tree is also stored.
func (s *Server) CreateTree(w http.ResponseWriter, r *http.Request) {
	in, err := seed.Load(r.Body, requestFormat(r))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateTree: Invalid request body", "err", err)
		return
	}

	tree, err := s.Factory.Create(in)
	if err != nil {
		http.Error(w, fmt.Sprintf("Build error: %v", err), buildErrorStatus(err))
		s.Logger.Warn("CreateTree: build failed", "err", err)
		return
	}

	status := http.StatusOK
	if id := r.URL.Query().Get("id"); id != "" {
		if err := s.Store.Save(r.Context(), id, tree); err != nil {
			http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
			s.Logger.Error("CreateTree: save failed", "id", id, "err", err)
			return
		}
		w.Header().Set("Location", "/trees/"+id)
		status = http.StatusCreated
	}

	s.writeTree(w, status, tree)
}

// ListTrees handles GET /trees.
func (s *Server) ListTrees(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListTrees failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"ids": ids}); err != nil {
		s.Logger.Error("ListTrees response encode failed", "err", err)
	}
}

// GetTree handles GET /trees/{id}.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, ok := s.loadTree(w, r)
	if !ok {
		return
	}
	s.writeTree(w, http.StatusOK, tree)
}

// QueryTree handles GET /trees/{id}/query?path=Table1.selectedRow.
func (s *Server) QueryTree(w http.ResponseWriter, r *http.Request) {
	tree, ok := s.loadTree(w, r)
	if !ok {
		return
	}

	path := r.URL.Query().Get("path")
	result, err := query.Get(tree, path)
	if err != nil {
		if errors.Is(err, query.ErrPathNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Query error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("QueryTree failed", "path", path, "err", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(result.Raw))
}

// DeleteTree handles DELETE /trees/{id}.
func (s *Server) DeleteTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("DeleteTree failed", "id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":     "datatree-http",
		"version": strings.TrimSpace(datatree.Version),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) loadTree(w http.ResponseWriter, r *http.Request) (domain.Tree, bool) {
	id := chi.URLParam(r, "id")
	tree, err := s.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, fmt.Sprintf("Tree %q not found", id), http.StatusNotFound)
			return nil, false
		}
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Snapshot load failed", "id", id, "err", err)
		return nil, false
	}
	return tree, true
}

func (s *Server) writeTree(w http.ResponseWriter, status int, tree domain.Tree) {
	body, err := tree.Encode()
	if err != nil {
		http.Error(w, fmt.Sprintf("Encode error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Tree encode failed", "err", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func requestFormat(r *http.Request) seed.Format {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.Contains(mediaType, "yaml") {
		return seed.FormatYAML
	}
	return seed.FormatJSON
}

// buildErrorStatus maps seed problems to 422 and anything else to 500.
func buildErrorStatus(err error) int {
	var (
		validation    *domain.ValidationError
		serialization *domain.SerializationError
		collision     *domain.CollisionWarning
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &serialization), errors.As(err, &collision):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
