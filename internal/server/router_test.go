package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh-ovd/indian-dishes/server/internal/auth"
	"github.com/santhosh-ovd/indian-dishes/server/internal/config"
	"github.com/santhosh-ovd/indian-dishes/server/internal/dataset"
	"github.com/santhosh-ovd/indian-dishes/server/internal/middleware"
	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
	"github.com/santhosh-ovd/indian-dishes/server/internal/service"
	"github.com/santhosh-ovd/indian-dishes/server/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(newTestHandler(t, 5))
	t.Cleanup(srv.Close)
	return srv
}

func newTestHandler(t *testing.T, requestTimeout int) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{WriteTimeout: requestTimeout + 5, RequestTimeout: requestTimeout},
		Auth:   config.AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Hour, RateLimit: 100, RateBurst: 100},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	log := logger.New("error")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	dishes, err := dataset.Load(ctx, dataset.EmbeddedSource)
	require.NoError(t, err)
	repo, err := repository.NewInMemoryDishRepository(dishes)
	require.NoError(t, err)

	maker, err := auth.NewJWTMaker(cfg.Auth.JWTSecret)
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:      cfg,
		Logger:      log,
		Dishes:      service.NewDishService(repo),
		Auth:        auth.NewService(auth.NewInMemoryUserRepository(), maker, cfg.Auth.TokenTTL, log),
		Metrics:     middleware.NewMetrics(),
		RateLimiter: middleware.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst, log),
	})
}

func register(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	body := `{"username": "santhosh", "email": "santhosh@example.com", "password": "123456"}`
	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res models.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res.Token
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/dishes", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := register(t, srv)

	resp = get(t, srv.URL+"/api/dishes?diet=vegetarian&limit=5&sortBy=cook_time", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result models.QueryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.LessOrEqual(t, len(result.Data), 5)
	assert.GreaterOrEqual(t, result.Total, len(result.Data))
	for i := 1; i < len(result.Data); i++ {
		assert.LessOrEqual(t, result.Data[i-1].CookTime, result.Data[i].CookTime)
	}

	resp = get(t, srv.URL+"/api/dishes/SAMOSA", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dish models.Dish
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dish))
	assert.Equal(t, "Samosa", dish.Name)

	resp = get(t, srv.URL+"/api/dishes/search?query=bengal", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/dishes/possible", bytes.NewBufferString(`{"ingredients": "rice"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	postResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	postResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, postResp.StatusCode)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv.URL+"/does/not/exist", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Path /does/not/exist not found", body["error"])
}

func TestRouter_LoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"email": "santhosh@example.com", "password": "wrong"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RequestTimeout(t *testing.T) {
	mux, ok := newTestHandler(t, 1).(*chi.Mux)
	require.True(t, ok)
	mux.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	start := time.Now()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, requestTimeout(&config.Config{Server: config.ServerConfig{RequestTimeout: 3}}))
	assert.Equal(t, defaultRequestTimeout, requestTimeout(&config.Config{}))
}
