package routing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriter_RewritesTenantHost(t *testing.T) {
	var gotPath, gotRawQuery string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})

	h := Rewriter(testConfig(), zerolog.Nop(), inner)

	req := httptest.NewRequest(http.MethodGet, "http://mysite.lvh.me:3000/pricing?ref=x", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/s/mysite/pricing", gotPath)
	assert.Equal(t, "ref=x", gotRawQuery, "query string must survive the rewrite")
}

func TestRewriter_PassThroughKeepsPath(t *testing.T) {
	var gotPath string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	})

	h := Rewriter(testConfig(), zerolog.Nop(), inner)

	req := httptest.NewRequest(http.MethodGet, "http://forless-ai.fly.dev/dashboard", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "/dashboard", gotPath)
}

func TestRewriter_ExcludedPathsUntouched(t *testing.T) {
	var gotPath string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	})

	h := Rewriter(testConfig(), zerolog.Nop(), inner)

	// Tenant host, but API paths are outside routing consideration.
	req := httptest.NewRequest(http.MethodGet, "http://mysite.lvh.me/api/v1/me", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "/api/v1/me", gotPath)
}
