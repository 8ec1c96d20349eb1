package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/api/posts.getAll", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/api/posts.create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts.getAll", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/posts.create", nil))

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Level != logrus.DebugLevel {
		t.Errorf("expected debug level for success, got %s", first.Level)
	}
	if first.Data["route"] != "/api/posts.getAll" {
		t.Errorf("expected route pattern, got %v", first.Data["route"])
	}
	if first.Data["request_id"] == "" {
		t.Error("expected a request id")
	}

	second := entries[1]
	if second.Level != logrus.InfoLevel {
		t.Errorf("expected info level for 4xx, got %s", second.Level)
	}
	if second.Data["status"] != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %v", second.Data["status"])
	}
}
