package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "coffee shop", r.URL.Query().Get("query"))
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"results":[{"urls":{"raw":"https://images.unsplash.com/photo-1"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	got := c.FetchImage(context.Background(), "coffee shop")
	assert.Equal(t, "https://images.unsplash.com/photo-1&fit=crop&w=1200&h=675&q=80", got)
}

func TestFetchImage_Fallbacks(t *testing.T) {
	t.Run("no access key", func(t *testing.T) {
		c := NewClient("")
		assert.Equal(t, FallbackImageURL, c.FetchImage(context.Background(), "coffee"))
	})

	t.Run("empty results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		c := NewClient("test-key")
		c.BaseURL = srv.URL
		assert.Equal(t, FallbackImageURL, c.FetchImage(context.Background(), "coffee"))
	})

	t.Run("server unreachable", func(t *testing.T) {
		c := NewClient("test-key")
		c.BaseURL = "http://127.0.0.1:1"
		assert.Equal(t, FallbackImageURL, c.FetchImage(context.Background(), "coffee"))
	})
}
