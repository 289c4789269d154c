package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"registrar/pkg/config"
	"registrar/pkg/logger"
	"registrar/pkg/middleware"
)

type routesFunc func(*httprouter.Router)

func (f routesFunc) RegisterRoutes(r *httprouter.Router) { f(r) }

func testApplication() *Application {
	cfg := &config.Config{
		Port:               "0",
		CORSAllowedOrigins: []string{"*"},
		RequestTimeout:     time.Second,
		MaxRequestSize:     1024,
		ShutdownTimeout:    time.Second,
		Log:                logger.Discard(),
	}

	api := routesFunc(func(r *httprouter.Router) {
		r.POST("/api/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusCreated)
		})
		r.GET("/api/panic", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			panic("boom")
		})
	})
	health := routesFunc(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
		r.GET("/ready", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	})
	return NewApplication(cfg, api, health)
}

func TestApplication_Routing(t *testing.T) {
	h := testApplication().Handler()

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		wantStatus  int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", http.StatusServiceUnavailable},
		{"api json", http.MethodPost, "/api/echo", "application/json", http.StatusCreated},
		{"api wrong content type", http.MethodPost, "/api/echo", "text/plain", http.StatusUnsupportedMediaType},
		{"api panic recovered", http.MethodGet, "/api/panic", "", http.StatusInternalServerError},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestApplication_CORSOnEveryRoute(t *testing.T) {
	h := testApplication().Handler()

	for _, path := range []string{"/health", "/api/echo"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://frontend.example.org")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
	}
}
