package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/GooseZen/spring-6-resttemplate/beer"
)

// Credentials accepted by FakeBeerAPI's token endpoint.
const (
	FakeClientID     = "messaging-client"
	FakeClientSecret = "secret"
)

const (
	fakeBeerPath     = "/api/v1/beer/"
	fakeTokenPath    = "/oauth2/token"
	defaultPageSize  = 25
	defaultExpiresIn = 3600
)

// RecordedRequest is a resource API call seen by FakeBeerAPI.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

// CreateResponse controls how FakeBeerAPI answers POST requests.
type CreateResponse struct {
	// Status defaults to 201 Created.
	Status int
	// IncludeBody returns the created beer in the response body.
	IncludeBody bool
	// OmitLocation drops the Location header.
	OmitLocation bool
}

// FakeBeerAPI is an in-memory beer API with a client-credentials token endpoint.
// Resource requests must carry the bearer token it issued.
type FakeBeerAPI struct {
	*httptest.Server

	AccessToken string

	mu            sync.Mutex
	beers         map[uuid.UUID]beer.Beer
	order         []uuid.UUID
	requests      []RecordedRequest
	tokenRequests int
	create        CreateResponse
	getStatus     int
}

// NewFakeBeerAPI starts a FakeBeerAPI on IPv4 loopback. The server is closed on test cleanup.
func NewFakeBeerAPI(tb testing.TB) *FakeBeerAPI {
	tb.Helper()

	api := &FakeBeerAPI{
		AccessToken: DefaultAccessToken,
		beers:       make(map[uuid.UUID]beer.Beer),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+fakeTokenPath, api.handleToken)
	mux.HandleFunc("GET "+fakeBeerPath+"{$}", api.authorized(api.handleList))
	mux.HandleFunc("POST "+fakeBeerPath+"{$}", api.authorized(api.handleCreate))
	mux.HandleFunc("GET "+fakeBeerPath+"{beerId}", api.authorized(api.handleGet))
	mux.HandleFunc("PUT "+fakeBeerPath+"{beerId}", api.authorized(api.handleUpdate))
	mux.HandleFunc("DELETE "+fakeBeerPath+"{beerId}", api.authorized(api.handleDelete))

	api.Server = NewLocalHTTPServer(tb, mux)
	tb.Cleanup(api.Close)

	return api
}

// TokenURL returns the URL of the token endpoint.
func (f *FakeBeerAPI) TokenURL() string {
	return f.URL + fakeTokenPath
}

// SetCreateResponse changes the shape of subsequent create responses.
func (f *FakeBeerAPI) SetCreateResponse(resp CreateResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.create = resp
}

// FailGets makes every GET by id answer with status. Zero restores normal behavior.
func (f *FakeBeerAPI) FailGets(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getStatus = status
}

// Seed stores beers in order, assigning ids where missing, and returns the stored copies.
func (f *FakeBeerAPI) Seed(beers ...beer.Beer) []beer.Beer {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]beer.Beer, 0, len(beers))
	for _, b := range beers {
		out = append(out, f.store(b))
	}
	return out
}

// Beer returns the stored beer with the given id.
func (f *FakeBeerAPI) Beer(id uuid.UUID) (beer.Beer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.beers[id]
	return b, ok
}

// Requests returns a snapshot of the resource API calls received so far.
func (f *FakeBeerAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// TokenRequests returns how many token exchanges were attempted.
func (f *FakeBeerAPI) TokenRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenRequests
}

// store must be called with mu held.
func (f *FakeBeerAPI) store(b beer.Beer) beer.Beer {
	if !b.HasID() {
		b.ID = uuid.New()
	}
	if _, exists := f.beers[b.ID]; !exists {
		f.order = append(f.order, b.ID)
	}
	f.beers[b.ID] = b
	return b
}

func (f *FakeBeerAPI) handleToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tokenRequests++
	f.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if r.PostForm.Get("grant_type") != "client_credentials" {
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type")
		return
	}

	id, secret, ok := r.BasicAuth()
	if !ok {
		id, secret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	}
	if id != FakeClientID || secret != FakeClientSecret {
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": f.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   defaultExpiresIn,
	})
}

func (f *FakeBeerAPI) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		f.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+f.AccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(strings.NewReader(string(body)))
		next(w, r)
	}
}

func (f *FakeBeerAPI) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageNumber, err := intParam(q.Get("pageNumber"), 0)
	if err != nil || pageNumber < 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	pageSize, err := intParam(q.Get("pageSize"), defaultPageSize)
	if err != nil || pageSize <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	name := strings.ToLower(q.Get("beerName"))
	style := beer.Style(q.Get("beerStyle"))
	showInventory := q.Get("showInventory") == "true"

	f.mu.Lock()
	matches := make([]beer.Beer, 0, len(f.order))
	for _, id := range f.order {
		b := f.beers[id]
		if name != "" && !strings.Contains(strings.ToLower(b.Name), name) {
			continue
		}
		if style != "" && b.Style != style {
			continue
		}
		if !showInventory {
			b.QuantityOnHand = nil
		}
		matches = append(matches, b)
	}
	f.mu.Unlock()

	start := min(pageNumber*pageSize, len(matches))
	end := min(start+pageSize, len(matches))

	writeJSON(w, http.StatusOK, map[string]any{
		"content": matches[start:end],
		"pageable": map[string]any{
			"pageNumber": pageNumber,
			"pageSize":   pageSize,
			"offset":     start,
			"sort":       map[string]bool{"sorted": false, "unsorted": true, "empty": true},
		},
		"number":        pageNumber,
		"size":          pageSize,
		"totalElements": len(matches),
		"totalPages":    (len(matches) + pageSize - 1) / pageSize,
		"first":         pageNumber == 0,
		"last":          end >= len(matches),
	})
}

func (f *FakeBeerAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var b beer.Beer
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.ID = uuid.Nil

	f.mu.Lock()
	created := f.store(b)
	resp := f.create
	f.mu.Unlock()

	status := resp.Status
	if status == 0 {
		status = http.StatusCreated
	}
	if !resp.OmitLocation {
		w.Header().Set("Location", fakeBeerPath+created.ID.String())
	}
	if resp.IncludeBody {
		writeJSON(w, status, created)
		return
	}
	w.WriteHeader(status)
}

func (f *FakeBeerAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	b, found := f.beers[id]
	failStatus := f.getStatus
	f.mu.Unlock()

	switch {
	case failStatus != 0:
		w.WriteHeader(failStatus)
	case !found:
		w.WriteHeader(http.StatusNotFound)
	default:
		writeJSON(w, http.StatusOK, b)
	}
}

func (f *FakeBeerAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var b beer.Beer
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.ID = id

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, found := f.beers[id]; !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	f.beers[id] = b
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBeerAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, found := f.beers[id]; !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	delete(f.beers, id)
	for i, candidate := range f.order {
		if candidate == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("beerId"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOAuthError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
