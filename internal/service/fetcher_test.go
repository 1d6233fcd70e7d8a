package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>héllo</html>"))
	}))
	defer srv.Close()

	body, err := NewHTTPFetcher(0, "test-agent/1.0").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>héllo</html>", body)
	assert.Equal(t, "test-agent/1.0", gotUA)
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(0, "").Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, "HTTP Error 404: Not Found", err.Error())
}

func TestHTTPFetcherRejectsInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x3c, 0xff, 0xfe, 0x3e})
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(0, "").Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotUTF8)
}

func TestHTTPFetcherHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPFetcher(0, "").Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcherUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(time.Second, "").Fetch(context.Background(), addr)
	assert.Error(t, err)
}
