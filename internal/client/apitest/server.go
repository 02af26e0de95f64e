// Package apitest runs a fake MemoMap API over the in-memory repositories so
// HTTP clients can be tested end to end.
package apitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/auth"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/memories"
	"github.com/dmitrijs2005/memomap/internal/common"
)

// Server is a running fake API.
type Server struct {
	URL      string
	Auth     *auth.InMemoryRepository
	Memories *memories.InMemoryRepository

	mu       sync.Mutex
	requests []string
}

// New starts a fake API that is shut down when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	a := auth.NewInMemoryRepository()
	s := &Server{
		Auth:     a,
		Memories: memories.NewInMemoryRepository(a.ResolveToken),
	}

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	s.URL = ts.URL

	return s
}

// Router exposes the routes so they can be mounted on another server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.logout).Methods(http.MethodPut)
	api.HandleFunc("/memories", s.listAll).Methods(http.MethodGet)
	api.HandleFunc("/memories", s.create).Methods(http.MethodPost)
	api.HandleFunc("/memories/user", s.listOwn).Methods(http.MethodGet)
	api.HandleFunc("/memories/{id:[0-9]+}", s.get).Methods(http.MethodGet)
	api.HandleFunc("/memories/{id:[0-9]+}", s.update).Methods(http.MethodPut)
	api.HandleFunc("/memories/{id:[0-9]+}", s.delete).Methods(http.MethodDelete)

	return r
}

// Requests returns "METHOD path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if !decode(w, r, &c) {
		return
	}
	u, err := s.Auth.Register(r.Context(), c.Username, c.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.UserResponse{Data: *u})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if !decode(w, r, &c) {
		return
	}
	u, err := s.Auth.Login(r.Context(), c.Username, c.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.UserResponse{Data: *u})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	msg, err := s.Auth.Logout(r.Context(), token(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.GeneralResponse{Message: msg})
}

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	items, err := s.Memories.ListAll(r.Context(), token(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) listOwn(w http.ResponseWriter, r *http.Request) {
	items, err := s.Memories.ListOwn(r.Context(), token(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req models.MemoryPostRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := s.Memories.Create(r.Context(), token(r), req.Caption, req.ImageURL, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.MemoryPostResponse{Data: *m})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	m, err := s.Memories.GetByID(r.Context(), token(r), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.MemoryPostResponse{Data: *m})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var req models.MemoryPostRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := s.Memories.Update(r.Context(), token(r), pathID(r), req.Caption, req.ImageURL, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.MemoryPostResponse{Data: *m})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Memories.Delete(r.Context(), token(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.GeneralResponse{Message: "Memory deleted"})
}

func token(r *http.Request) string {
	return r.Header.Get(common.TokenHeaderName)
}

// pathID cannot fail: the route only matches digits.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Errors: "invalid request body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, memories.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, memories.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, models.ErrorResponse{Errors: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
