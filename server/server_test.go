package server_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrianliechti/mineru/config"
	"github.com/adrianliechti/mineru/server"

	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extractors:\n  text:\n    type: text\n"), 0o600))

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	s, err := server.New(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader("hello world"))
	req.Header.Set("Content-Type", "text/plain")

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello world", rec.Body.String())
	require.Equal(t, "text/plain", rec.Header().Get("Content-Type"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/extract", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
