package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/folio/internal/books"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIURL)
	}

	u, err = parseBaseURL("https://example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "https://example.com:1234/api" {
		t.Fatalf("url = %q, want prefix kept and query dropped", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_EndpointsMethodsAndBodies(t *testing.T) {
	t.Parallel()

	type call struct {
		method, path, body, requestID, contentType, userAgent string
	}
	var (
		mu    sync.Mutex
		calls []call
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, call{
			method:      r.Method,
			path:        r.URL.EscapedPath(),
			body:        string(raw),
			requestID:   r.Header.Get(requestIDHeader),
			contentType: r.Header.Get("Content-Type"),
			userAgent:   r.Header.Get("User-Agent"),
		})
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/books":
			_, _ = w.Write([]byte(`[{"_id":"1","title":"Dune","author":"Herbert","price":10},{"_id":7,"title":"Emma","author":"Austen","price":null}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/books":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"9"}`))
		case r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"message":"Book updated"}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []books.Item{
		{ID: "1", Title: "Dune", Author: "Herbert", Price: 10},
		{ID: "7", Title: "Emma", Author: "Austen", Price: 0},
	}
	if len(items) != 2 || items[0] != want[0] || items[1] != want[1] {
		t.Fatalf("List = %#v, want %#v", items, want)
	}

	id, err := c.Create(ctx, books.Draft{Title: "Foo", Author: "Bar", Price: 5})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != "9" {
		t.Fatalf("Create id = %q, want 9", id)
	}

	if err := c.Update(ctx, "a b", books.Draft{Title: "T", Author: "A", Price: 12.5}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := c.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 4 {
		t.Fatalf("server saw %d calls, want 4", len(calls))
	}
	if calls[1].body != `{"title":"Foo","author":"Bar","price":5}` || calls[1].contentType != "application/json" {
		t.Fatalf("create call = %#v, want JSON body", calls[1])
	}
	if calls[2].method != http.MethodPut || calls[2].path != "/books/a%20b" {
		t.Fatalf("update call = %s %s, want PUT /books/a%%20b", calls[2].method, calls[2].path)
	}
	if calls[2].body != `{"title":"T","author":"A","price":12.5}` {
		t.Fatalf("update body = %s", calls[2].body)
	}
	if calls[3].method != http.MethodDelete || calls[3].path != "/books/1" || calls[3].body != "" {
		t.Fatalf("delete call = %#v, want DELETE /books/1 without body", calls[3])
	}
	seen := map[string]bool{}
	for _, cl := range calls {
		if cl.requestID == "" || seen[cl.requestID] {
			t.Fatalf("request id = %q, want unique non-empty", cl.requestID)
		}
		seen[cl.requestID] = true
		if !strings.HasPrefix(cl.userAgent, "folio/") {
			t.Fatalf("User-Agent = %q, want folio/*", cl.userAgent)
		}
	}
}

func TestClient_NaNPriceIsSentAsNull(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"id":"x"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Create(context.Background(), books.Draft{Title: "t", Price: math.NaN()}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	price, ok := body["price"]
	if !ok || price != nil {
		t.Fatalf("price = %#v (present=%v), want null", price, ok)
	}
}

func TestClient_PathPrefixIsKept(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotPath != "/api/books" {
		t.Fatalf("path = %q, want /api/books", gotPath)
	}
}

func TestClient_NullListIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	items, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("List = %#v, want empty", items)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPut:
			http.Error(w, "nope", http.StatusInternalServerError)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotModified)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %v, want decode response error", err)
	}

	err = c.Update(context.Background(), "1", books.Draft{})
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusInternalServerError {
		t.Fatalf("Update error = %v, want StatusError 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Update error = %q, want status in message", err.Error())
	}

	if err := c.Delete(context.Background(), "1"); !errors.As(err, &se) || se.Status != http.StatusNotModified {
		t.Fatalf("Delete error = %v, want StatusError 304", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Create(context.Background(), books.Draft{}); err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("Create error = %v, want execute request error", err)
	}
}

func TestClient_RejectsEmptyID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Update(context.Background(), " ", books.Draft{}); !errors.Is(err, books.ErrMissingID) {
		t.Fatalf("Update err = %v, want ErrMissingID", err)
	}
	if err := c.Delete(context.Background(), ""); !errors.Is(err, books.ErrMissingID) {
		t.Fatalf("Delete err = %v, want ErrMissingID", err)
	}
}
