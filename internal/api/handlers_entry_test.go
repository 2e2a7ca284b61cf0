package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodgarden/moodgarden/internal/model"
	"github.com/moodgarden/moodgarden/internal/services"
	"github.com/moodgarden/moodgarden/internal/store"
)

// In-memory collaborators; generation runs inline so handler tests observe
// final state without polling.

type stubStore struct {
	mu      sync.Mutex
	entries map[string]*model.Entry
	nextID  int
}

func newStubStore() *stubStore { return &stubStore{entries: map[string]*model.Entry{}} }

func (s *stubStore) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	out := *e
	out.ID = fmt.Sprintf("e%d", s.nextID)
	out.Timestamp = time.Now().UTC()
	s.entries[out.ID] = &out
	cp := out
	return &cp, nil
}

func (s *stubStore) List(ctx context.Context) ([]*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []*model.Entry
	for _, e := range s.entries {
		cp := *e
		res = append(res, &cp)
	}
	return res, nil
}

func (s *stubStore) Get(ctx context.Context, id string) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *stubStore) Update(ctx context.Context, id string, upd model.EntryUpdate) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Content != nil {
		e.Content = *upd.Content
	}
	if upd.Mood != nil {
		e.Mood = *upd.Mood
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.FlowerImageURL != nil {
		e.FlowerImageURL = upd.FlowerImageURL
	}
	cp := *e
	return &cp, nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// failingStore rejects every operation with a non-sentinel error.
type failingStore struct{}

var errStoreDown = errors.New("store unavailable")

func (failingStore) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	return nil, errStoreDown
}
func (failingStore) List(ctx context.Context) ([]*model.Entry, error) { return nil, errStoreDown }
func (failingStore) Get(ctx context.Context, id string) (*model.Entry, error) {
	return nil, errStoreDown
}
func (failingStore) Update(ctx context.Context, id string, upd model.EntryUpdate) (*model.Entry, error) {
	return nil, errStoreDown
}
func (failingStore) Delete(ctx context.Context, id string) error { return errStoreDown }

type stubBlob struct{}

func (stubBlob) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}
func (stubBlob) Delete(ctx context.Context, key string) error { return nil }
func (stubBlob) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://blobs.test/" + key, nil
}

type stubGen struct{}

func (stubGen) Generate(ctx context.Context, prompt string) ([]byte, error) {
	return []byte("png"), nil
}

type inlineRunner struct{}

func (inlineRunner) Submit(name string, fn func(ctx context.Context)) { fn(context.Background()) }

func newTestServer(t *testing.T) (*httptest.Server, *stubStore) {
	t.Helper()
	st := newStubStore()
	return newTestServerWith(t, st), st
}

func newTestServerWith(t *testing.T, st store.EntryStore) *httptest.Server {
	t.Helper()
	svc := services.NewEntryService(st, stubBlob{}, stubGen{}, inlineRunner{}, zerolog.Nop(), time.Hour)

	router := mux.NewRouter()
	h := NewEntryHandler(svc)
	router.HandleFunc("/entries", h.CreateEntry).Methods("POST")
	router.HandleFunc("/entries", h.ListEntries).Methods("GET")
	router.HandleFunc("/entries/{id}/flower-status", h.GetFlowerStatus).Methods("GET")
	router.HandleFunc("/entries/{id}", h.UpdateEntry).Methods("PUT")
	router.HandleFunc("/entries/{id}", h.DeleteEntry).Methods("DELETE")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postEntry(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+"/entries", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, bytes.NewBufferString(body))
	}
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateEntry_Created(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postEntry(t, server, `{"title":"A","content":"B","mood":"Happy"}`)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "processing", body.Status)
}

func TestCreateEntry_MissingFieldsAndBadJSON(t *testing.T) {
	server, st := newTestServer(t)

	for _, body := range []string{
		`{"content":"B","mood":"Happy"}`,
		`{"title":"A","mood":"Happy"}`,
		`{"title":"A","content":"B"}`,
		`not json`,
	} {
		resp := postEntry(t, server, body)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
	assert.Empty(t, st.entries)
}

func TestListEntries_EmptyIsArray(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, server.URL+"/entries", "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []model.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Empty(t, entries)
}

func TestGetFlowerStatus(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postEntry(t, server, `{"title":"A","content":"B","mood":"Happy"}`)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodGet, server.URL+"/entries/"+created.ID+"/flower-status", "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry model.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, created.ID, entry.ID)
	assert.Equal(t, model.StatusCompleted, entry.Status)
	require.NotNil(t, entry.FlowerImageURL)
	assert.Contains(t, *entry.FlowerImageURL, "flowers/"+created.ID+".png")
}

func TestGetFlowerStatus_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doRequest(t, http.MethodGet, server.URL+"/entries/missing/flower-status", "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateEntry(t *testing.T) {
	server, st := newTestServer(t)

	resp := postEntry(t, server, `{"title":"A","content":"B","mood":"Happy"}`)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPut, server.URL+"/entries/"+created.ID, `{"title":"A2","content":"B2","mood":"Sad"}`)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Message)

	stored, err := st.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", stored.Title)
	assert.Equal(t, "Sad", stored.Mood)
}

func TestUpdateEntry_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doRequest(t, http.MethodPut, server.URL+"/entries/missing", `{"title":"A","content":"B","mood":"Happy"}`)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteEntry(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postEntry(t, server, `{"title":"A","content":"B","mood":"Happy"}`)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodDelete, server.URL+"/entries/"+created.ID, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, server.URL+"/entries/"+created.ID+"/flower-status", "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoreErrorsMapToInternalError(t *testing.T) {
	server := newTestServerWith(t, failingStore{})

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/entries", `{"title":"A","content":"B","mood":"Happy"}`},
		{http.MethodGet, "/entries", ""},
		{http.MethodGet, "/entries/e1/flower-status", ""},
		{http.MethodPut, "/entries/e1", `{"title":"A","content":"B","mood":"Happy"}`},
		{http.MethodDelete, "/entries/e1", ""},
	}
	for _, tc := range cases {
		resp := doRequest(t, tc.method, server.URL+tc.path, tc.body)
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Internal Server Error", body.Error, "%s %s", tc.method, tc.path)
	}
}

func TestUpdateAndDelete_StoreErrorBodiesAreGeneric(t *testing.T) {
	server := newTestServerWith(t, failingStore{})

	resp := doRequest(t, http.MethodPut, server.URL+"/entries/e1", `{"title":"A","content":"B","mood":"Happy"}`)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, "Failed to update entry", body.Message)

	resp = doRequest(t, http.MethodDelete, server.URL+"/entries/e1", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, "Failed to delete entry", body.Message)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doRequest(t, http.MethodDelete, server.URL+"/entries/missing", "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
