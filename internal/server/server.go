// Package server exposes the document store over HTTP.
//
// The API is a thin persistence surface: documents are validated and
// normalized at the PUT boundary, so everything the store hands back is
// structurally valid by construction. Editing semantics (undo/redo,
// gestures) live in the client; the server never sees intermediate states.
//
// # Endpoints
//
//	GET    /healthz                   liveness probe
//	GET    /documents                 list document names
//	GET    /documents/{name}          fetch a document
//	PUT    /documents/{name}          validate, normalize and save
//	DELETE /documents/{name}          delete a document
//	GET    /documents/{name}/dot      Graphviz DOT export
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
	apperrors "github.com/trig29/Flowchart-Json-Editor/pkg/errors"
	"github.com/trig29/Flowchart-Json-Editor/pkg/render"
	"github.com/trig29/Flowchart-Json-Editor/pkg/store"
)

// Server serves the document API over a store backend.
type Server struct {
	store  store.Store
	logger *log.Logger
}

// New creates a server over the given store. A nil logger falls back to
// the default logger.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/dot", s.handleDOT)
		})
	})
	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list documents"))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDocumentName(name); err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.store.Load(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeDocumentNotFound, "no document named %q", name))
		return
	}
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "load %s", name))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := doc.WriteDocument(d, w); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDocumentName(name); err != nil {
		s.writeError(w, err)
		return
	}

	// The single validation gate: a malformed body never reaches the
	// store, and a stored document is always normalized.
	d, err := doc.ReadDocument(r.Body)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "invalid document"))
		return
	}
	if err := validateIDs(d); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Save(r.Context(), name, d); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save %s", name))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"nodes": len(d.Nodes),
		"edges": len(d.Edges),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDocumentName(name); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete %s", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDocumentName(name); err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.store.Load(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeDocumentNotFound, "no document named %q", name))
		return
	}
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "load %s", name))
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(render.ToDOT(d, render.Options{})))
}

// validateIDs rejects documents whose node or edge ids would not survive
// as store keys or URL segments. Normalization repairs structure, not ids,
// so this is the external boundary's job.
func validateIDs(d doc.Document) error {
	for _, n := range d.Nodes {
		if err := apperrors.ValidateNodeID(n.ID); err != nil {
			return apperrors.Wrap(apperrors.GetCode(err), err, "node %q", n.ID)
		}
	}
	for _, e := range d.Edges {
		if err := apperrors.ValidateNodeID(e.ID); err != nil {
			return apperrors.Wrap(apperrors.GetCode(err), err, "edge %q", e.ID)
		}
	}
	return nil
}

// errorBody is the wire shape of API errors.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidName, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidColor:
		status = http.StatusBadRequest
	case apperrors.ErrCodeDocumentNotFound, apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = apperrors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
