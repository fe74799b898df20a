// Package twin is an in-memory stand-in for the Webmaster API v4.
//
// It serves the same routes as https://api.webmaster.yandex.net/v4 from a
// seeded store, checks the Authorization header, answers with the documented
// error bodies and records every request so tests can assert on the wire.
package twin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Defaults used when no option overrides them.
const (
	DefaultToken  = "twin-token"
	DefaultUserID = int64(64298904)
)

// Fault replaces the response for one path.
type Fault struct {
	StatusCode int
	Body       string
	// Times limits how many requests are affected. Zero means every request.
	Times int
}

// Twin serves a fake Webmaster API.
type Twin struct {
	Router chi.Router

	token  string
	scheme string
	userID int64
	clock  func() time.Time
	store  *store
}

// Option configures a Twin.
type Option func(*Twin)

// WithToken sets the token the twin accepts.
func WithToken(token string) Option {
	return func(t *Twin) {
		t.token = token
	}
}

// WithAuthScheme sets the Authorization scheme the twin accepts.
func WithAuthScheme(scheme string) Option {
	return func(t *Twin) {
		t.scheme = scheme
	}
}

// WithUserID sets the user bound to the token.
func WithUserID(userID int64) Option {
	return func(t *Twin) {
		t.userID = userID
	}
}

// WithClock sets the time source used for seeded data and new records.
func WithClock(clock func() time.Time) Option {
	return func(t *Twin) {
		t.clock = clock
	}
}

// New creates a Twin with no hosts.
func New(opts ...Option) *Twin {
	twin := &Twin{
		token:  DefaultToken,
		scheme: webmaster.DefaultAuthScheme,
		userID: DefaultUserID,
		clock:  func() time.Time { return time.Now().UTC() },
		store:  newStore(),
	}

	for _, opt := range opts {
		opt(twin)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(twin.recordRequests)
	r.Use(twin.faultInjection)
	r.Route("/v4", func(r chi.Router) {
		r.Use(twin.authenticate)
		twin.routes(r)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, webmaster.ErrorCodeResourceNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, webmaster.ErrorCodeMethodNotAllowed, "method not allowed")
	})

	twin.Router = r

	return twin
}

// NewServer starts an httptest server backed by a new Twin.
// The API root is server.URL + "/v4".
func NewServer(opts ...Option) (*Twin, *httptest.Server) {
	twin := New(opts...)

	return twin, httptest.NewServer(twin)
}

// ServeHTTP implements http.Handler.
func (t *Twin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.Router.ServeHTTP(w, r)
}

// Token returns the accepted token.
func (t *Twin) Token() string {
	return t.token
}

// UserID returns the user bound to the token.
func (t *Twin) UserID() int64 {
	return t.userID
}

// AddHost seeds a site and returns its host ID. Verified sites get owners
// and full statistics access.
func (t *Twin) AddHost(hostURL string, verified bool) string {
	hostID, parsed, ok := hostIDFromURL(hostURL)
	if !ok {
		panic("twin: invalid host URL " + hostURL)
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, exists := t.store.host(hostID); !exists {
		t.store.addHost(newHostRecord(hostID, parsed, verified, t.clock()))
	}

	return hostID
}

// SetRecrawlQuota overrides the recrawl quota of a host.
func (t *Twin) SetRecrawlQuota(hostID string, daily, remainder int64) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if record, ok := t.store.host(hostID); ok {
		record.recrawlQuota = webmaster.RecrawlQuota{DailyQuota: daily, QuotaRemainder: remainder}
	}
}

// SetFault makes requests to path fail with fault. Path includes the /v4 prefix.
func (t *Twin) SetFault(path string, fault Fault) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.faults[path] = &fault
}

// ClearFaults removes every registered fault.
func (t *Twin) ClearFaults() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.faults = make(map[string]*Fault)
}

// Requests returns a copy of the recorded requests.
func (t *Twin) Requests() []RecordedRequest {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	requests := make([]RecordedRequest, len(t.store.requests))
	copy(requests, t.store.requests)

	return requests
}

// Reset drops all hosts, faults and recorded requests.
func (t *Twin) Reset() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.hosts = make(map[string]*hostRecord)
	t.store.order = nil
	t.store.requests = nil
	t.store.faults = make(map[string]*Fault)
}

func (t *Twin) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		t.store.record(RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})

		next.ServeHTTP(w, r)
	})
}

func (t *Twin) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fault := t.store.takeFault(r.URL.Path)
		if fault == nil {
			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fault.StatusCode)
		_, _ = w.Write([]byte(fault.Body))
	})
}

func (t *Twin) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != t.scheme+" "+t.token {
			writeError(w, webmaster.ErrorCodeInvalidOAuthToken, "Invalid oauth token")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a Webmaster error body with the documented status of code.
func writeError(w http.ResponseWriter, code webmaster.ErrorCode, message string) {
	status := code.DocumentedStatus()
	if status == 0 {
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, webmaster.APIErrorResponse{
		ErrorCode:    code,
		ErrorMessage: message,
	})
}
