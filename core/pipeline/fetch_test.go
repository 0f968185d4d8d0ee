package pipeline

import (
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "meetinggraph/1.0", r.UserAgent())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><script>alert(1)</script><h1>City Council</h1><p>Q1 Review</p></body></html>`)
	})
	mux.HandleFunc("/gzip", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		fmt.Fprint(gz, `<p>compressed page</p>`)
		gz.Close()
	})
	mux.HandleFunc("/large", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>hello</p><p>world and more text</p>`)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, 0)
	ctx := context.Background()

	t.Run("Valid call Fetch", func(t *testing.T) {
		text, err := fetcher.Fetch(ctx, server.URL+"/page")
		require.NoError(t, err)
		assert.Equal(t, "City Council Q1 Review", text)
	})

	t.Run("Fetch decodes gzip", func(t *testing.T) {
		text, err := fetcher.Fetch(ctx, server.URL+"/gzip")
		require.NoError(t, err)
		assert.Equal(t, "compressed page", text)
	})

	t.Run("Fetch caps the body size", func(t *testing.T) {
		text, err := NewHTTPFetcher(5*time.Second, 20).Fetch(ctx, server.URL+"/large")
		require.NoError(t, err)
		assert.Equal(t, "hello world", text)
	})

	t.Run("Fetch fails on error status", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, server.URL+"/missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http status 404")
	})

	t.Run("Fetch rejects invalid urls", func(t *testing.T) {
		for _, u := range []string{"", "not a url", "ftp://example.org/file", "http://"} {
			_, err := fetcher.Fetch(ctx, u)
			assert.Error(t, err, "Expected %q to be rejected", u)
		}
	})

	t.Run("Fetch honours context cancellation", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := fetcher.Fetch(canceled, server.URL+"/page")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
