// Package remotetest runs an in-memory books API over httptest for tests
// that exercise the real HTTP client.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/folio/internal/remote"
)

// Server is an in-memory books API. Listing preserves insertion order.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	order    []string
	books    map[string]remote.BookPayload
	failures map[string]int
	requests []string
}

// New starts a Server seeded with the given books. Seed entries without an
// id get a fresh one.
func New(seed ...remote.Book) *Server {
	s := &Server{
		books:    make(map[string]remote.BookPayload, len(seed)),
		failures: make(map[string]int),
	}
	for _, b := range seed {
		id := string(b.ID)
		if id == "" {
			id = uuid.NewString()
		}
		s.order = append(s.order, id)
		s.books[id] = remote.BookPayload{Title: b.Title, Author: b.Author, Price: b.Price}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", s.handleList)
	mux.HandleFunc("POST /books", s.handleCreate)
	mux.HandleFunc("PUT /books/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /books/{id}", s.handleDelete)
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Fail makes every later request with the given method answer status.
// A zero status clears it.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, method)
		return
	}
	s.failures[method] = status
}

// Books returns the stored books in list order.
func (s *Server) Books() []remote.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Requests returns "METHOD /path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		status := s.failures[r.Method]
		s.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listLocked() []remote.Book {
	out := make([]remote.Book, 0, len(s.order))
	for _, id := range s.order {
		b := s.books[id]
		out = append(out, remote.Book{ID: remote.BookID(id), Title: b.Title, Author: b.Author, Price: b.Price})
	}
	return out
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := s.listLocked()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload remote.BookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid input"})
		return
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	s.mu.Lock()
	s.order = append(s.order, id)
	s.books[id] = payload
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var payload remote.BookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid input"})
		return
	}

	s.mu.Lock()
	_, ok := s.books[id]
	if ok {
		s.books[id] = payload
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book updated"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	_, ok := s.books[id]
	if ok {
		delete(s.books, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
