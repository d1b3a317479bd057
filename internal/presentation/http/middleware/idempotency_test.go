package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
)

// memIdempotencyRepo implements repository.IdempotencyRepository in memory
type memIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
}

func (m *memIdempotencyRepo) GetByKey(_ context.Context, key string) (*entity.IdempotencyKey, error) {
	return m.keys[key], nil
}

func (m *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.keys[ikey.Key] = ikey
	return nil
}

func (m *memIdempotencyRepo) DeleteExpired(_ context.Context) error {
	return nil
}

func newSubmitRouter(repo *memIdempotencyRepo, commits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/submit", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		*commits++
		c.JSON(http.StatusCreated, gin.H{"commits": *commits})
	})
	return router
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	repo := newMemIdempotencyRepo()
	commits := 0
	router := newSubmitRouter(repo, &commits)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(IdempotencyKeyHeader, "batch-1")
	router.ServeHTTP(first, req)

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 1, commits)

	// Same key: the cached receipt comes back, the handler never runs again
	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(IdempotencyKeyHeader, "batch-1")
	router.ServeHTTP(second, req)

	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 1, commits, "replay must not commit a second time")
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	// A fresh key commits again
	third := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(IdempotencyKeyHeader, "batch-2")
	router.ServeHTTP(third, req)

	assert.Equal(t, 2, commits)
	assert.Empty(t, third.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	repo := newMemIdempotencyRepo()
	commits := 0
	router := newSubmitRouter(repo, &commits)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	assert.Equal(t, 2, commits, "no key means no replay")
	assert.Empty(t, repo.keys)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newMemIdempotencyRepo()
	fail := true
	router := gin.New()
	router.POST("/submit", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusBadGateway, gin.H{"message": "backend down"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "committed"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(IdempotencyKeyHeader, "batch-1")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, repo.keys, "failed responses are not cached")

	// The same key can retry after a failure and succeed
	fail = false
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(IdempotencyKeyHeader, "batch-1")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "committed"))
}
