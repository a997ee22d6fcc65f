package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// listCache keeps catalog listings in redis. A nil client or a redis
// outage falls through to the database.
type listCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newListCache(rdb *redis.Client, ttl time.Duration) *listCache {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &listCache{rdb: rdb, ttl: ttl}
}

func (lc *listCache) get(ctx context.Context, key string, dest any) bool {
	if lc.rdb == nil {
		return false
	}
	b, err := lc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache get %s: %v", key, err)
		}
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (lc *listCache) set(ctx context.Context, key string, v any) {
	if lc.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := lc.rdb.Set(ctx, key, data, lc.ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

func (lc *listCache) invalidate(ctx context.Context, key string) {
	if lc.rdb == nil {
		return
	}
	if err := lc.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("cache del %s: %v", key, err)
	}
}

type catalogHandler[T domain.CatalogEntity] struct {
	catalog  *services.Catalog[T]
	cache    *listCache
	cacheKey string
}

// registerCatalog mounts the CRUD routes of one catalog table under
// /catalog/<kind>.
func registerCatalog[T domain.CatalogEntity](r gin.IRouter, catalog *services.Catalog[T], cache *listCache) {
	h := &catalogHandler[T]{
		catalog:  catalog,
		cache:    cache,
		cacheKey: "catalog:" + string(catalog.Kind()),
	}
	g := r.Group("/catalog/" + string(catalog.Kind()))
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.PUT("/:id/image", h.setImage)
	g.DELETE("/:id", h.delete)
}

func (h *catalogHandler[T]) list(c *gin.Context) {
	ctx := c.Request.Context()
	var items []T
	if h.cache.get(ctx, h.cacheKey, &items) {
		c.JSON(http.StatusOK, items)
		return
	}

	items, err := h.catalog.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	h.cache.set(ctx, h.cacheKey, items)
	c.JSON(http.StatusOK, items)
}

func (h *catalogHandler[T]) get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *catalogHandler[T]) create(c *gin.Context) {
	var p T
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.catalog.Create(c.Request.Context(), &p)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.invalidate(c.Request.Context(), h.cacheKey)
	c.JSON(http.StatusCreated, created)
}

func (h *catalogHandler[T]) update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var p T
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.catalog.Update(c.Request.Context(), id, &p)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.invalidate(c.Request.Context(), h.cacheKey)
	c.JSON(http.StatusOK, updated)
}

func (h *catalogHandler[T]) setImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req SetImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.catalog.SetImage(c.Request.Context(), id, req.Filename)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.invalidate(c.Request.Context(), h.cacheKey)
	c.JSON(http.StatusOK, updated)
}

func (h *catalogHandler[T]) delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.cache.invalidate(c.Request.Context(), h.cacheKey)
	c.Status(http.StatusNoContent)
}
