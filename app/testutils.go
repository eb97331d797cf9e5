package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/common"
	"github.com/sushihentaime/blogshelf/internal/config"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

// newTestApplication wires the application onto an in-memory store with no
// simulated latency and no broker.
func newTestApplication(t *testing.T) *application {
	cfg := &config.Config{
		Port:           ":0",
		Environment:    "testing",
		Version:        "test",
		SiteURL:        "http://blog.test",
		TrustedOrigins: []string{"http://localhost:5173"},
	}
	cfg.Store.Backend = "memory"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &application{
		config:      cfg,
		logger:      logger,
		cache:       common.NewCache(5*time.Minute, 10*time.Minute),
		blogService: blogservice.NewBlogService(common.NewMemoryKV(), nil, logger, blogservice.NoLatency),
	}
}

func (ts *testServer) do(t *testing.T, method, path string, payload any, headers map[string]string) *http.Response {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func (ts *testServer) post(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodPost, path, payload, nil))
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodGet, path, nil, nil))
}

func (ts *testServer) put(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodPut, path, payload, nil))
}

func (ts *testServer) patch(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodPatch, path, payload, nil))
}

func (ts *testServer) delete(t *testing.T, path string) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodDelete, path, nil, nil))
}
