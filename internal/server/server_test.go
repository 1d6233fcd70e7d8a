package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/config"
	"github.com/pageza/alchemorsel-scraper/internal/mocks"
)

const recipePage = `<!doctype html>
<html lang="en"><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Recipe","name":"Garlic Rice",
 "recipeYield":"2","totalTime":"PT25M",
 "recipeIngredient":["1 cup jasmine rice","2 cloves garlic, minced","salt to taste"],
 "recipeInstructions":[{"@type":"HowToStep","text":"Rinse the rice."},{"@type":"HowToStep","text":"Cook with garlic."}]}
</script></head><body></body></html>`

func testConfig() *config.Config {
	return &config.Config{
		Environment:       config.Test,
		ServerPort:        5000,
		AllowedOrigins:    []string{"https://app.example.com"},
		LogLevel:          "info",
		LogFormat:         "json",
		ParseIngredients:  true,
		IngredientWorkers: 2,
		UserAgent:         "test-agent",
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNew(t *testing.T) {
	srv := New(testConfig(), zap.NewNop())
	require.NotNil(t, srv)

	w := do(t, srv.Handler(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, World!", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = do(t, srv.Handler(), http.MethodGet, "/about", "")
	assert.Equal(t, "About", w.Body.String())
}

func TestScrapeRecipeEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(recipePage))
	}))
	defer upstream.Close()

	srv := New(testConfig(), zap.NewNop())
	body := `{"url":"` + upstream.URL + `/garlic-rice"}`

	first := do(t, srv.Handler(), http.MethodPost, "/scrape-recipe", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	assert.Equal(t, "Garlic Rice", resp["title"])
	assert.Equal(t, "2 servings", resp["yields"])
	assert.Equal(t, float64(25), resp["total_time"])
	assert.Equal(t, []interface{}{"1 cup jasmine rice", "2 cloves garlic, minced", "salt to taste"}, resp["ingredients"])

	parsed, ok := resp["parsed_ingredients"].([]interface{})
	require.True(t, ok)
	require.Len(t, parsed, 3)
	garlic := parsed[1].(map[string]interface{})
	assert.Equal(t, "garlic", garlic["name"])
	assert.Equal(t, "minced", garlic["preparation"])
	assert.Equal(t, "2 cloves garlic, minced", garlic["original"])
	salt := parsed[2].(map[string]interface{})
	assert.Equal(t, "salt", salt["name"])
	assert.Equal(t, "to taste", salt["comment"])
	assert.Equal(t, []interface{}{}, salt["amount"])

	second := do(t, srv.Handler(), http.MethodPost, "/scrape-recipe", body)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestScrapeRecipeIngredientStageDisabled(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(recipePage))
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.ParseIngredients = false
	srv := New(cfg, zap.NewNop())

	w := do(t, srv.Handler(), http.MethodPost, "/scrape-recipe", `{"url":"`+upstream.URL+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "parsed_ingredients")
}

func TestScrapeRecipeErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte("<html><body>no recipe here</body></html>"))
		}
	}))
	defer upstream.Close()

	srv := New(testConfig(), zap.NewNop())

	tests := []struct {
		name   string
		body   string
		status int
		error  string
	}{
		{"empty url", `{"url":""}`, http.StatusBadRequest, "URL is required"},
		{"missing url", `{}`, http.StatusBadRequest, "URL is required"},
		{"null url", `{"url":null}`, http.StatusBadRequest, "URL is required"},
		{"null body", `null`, http.StatusBadRequest, "URL is required"},
		{"no host", `{"url":"http://"}`, http.StatusBadRequest, "Invalid URL format"},
		{"no scheme", `{"url":"example.com"}`, http.StatusBadRequest, "Invalid URL format"},
		{"upstream 404", `{"url":"` + upstream.URL + `/missing"}`, http.StatusInternalServerError, "HTTP Error 404: Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv.Handler(), http.MethodPost, "/scrape-recipe", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.error+`"}`, w.Body.String())
		})
	}

	t.Run("page without recipe", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodPost, "/scrape-recipe", `{"url":"`+upstream.URL+`/plain"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
		assert.Contains(t, resp["error"], "no schema.org Recipe")
	})
}

func TestPanicInPipelineIsJSON(t *testing.T) {
	svc := new(mocks.MockScrapeService)
	svc.On("ScrapeRecipe", mock.Anything, "https://example.com/").Run(func(mock.Arguments) {
		panic("extractor blew up")
	})

	srv := NewWithService(testConfig(), svc, zap.NewNop())
	w := do(t, srv.Handler(), http.MethodPost, "/scrape-recipe", `{"url":"https://example.com/"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"extractor blew up"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	srv := New(testConfig(), zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/scrape-recipe", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnlistedOriginGetsJSONResponse(t *testing.T) {
	srv := New(testConfig(), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/scrape-recipe", bytes.NewBufferString(`{"url":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://other.example")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"URL is required"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(testConfig(), zap.NewNop())
	_ = do(t, srv.Handler(), http.MethodGet, "/", "")

	w := do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scraper_http_requests_total")
}

func TestStartAndShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
	srv := New(cfg, zap.NewNop())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}
