// Package main tests for server assembly.
package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kimhsiao/eboard/internal/config"
	"github.com/kimhsiao/eboard/internal/logging"
)

func testConfig() config.Config {
	cfg := config.Defaults(config.Testing)
	cfg.ListenAddr = "127.0.0.1:0"
	return cfg
}

func TestNewApp_routes(t *testing.T) {
	logging.Init(io.Discard, logging.LevelError)

	a, err := newApp(testConfig())
	if err != nil {
		t.Fatalf("newApp() failed: %v", err)
	}
	defer a.close()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodDelete, "/healthz", http.StatusMethodNotAllowed},
		{http.MethodGet, "/tags", http.StatusUnauthorized},
		{http.MethodGet, "/users/nobody", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestNewApp_badDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseURI = "postgres://localhost/eboard"
	if _, err := newApp(cfg); err == nil {
		t.Fatal("newApp() should reject an unsupported database uri")
	}
}

func TestRun_stopsOnCancel(t *testing.T) {
	logging.Init(io.Discard, logging.LevelError)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}
