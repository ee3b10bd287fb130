package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// CacheSetRequest stores value under key. TTL is in seconds; zero means no expiry.
type CacheSetRequest struct {
	Key   string          `json:"key" binding:"required" example:"greeting"`
	Value json.RawMessage `json:"value" swaggertype:"object"`
	TTL   float64         `json:"ttl" example:"60"`
}

// CacheValueResponse carries a cached value.
type CacheValueResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type cacheRoutes struct {
	market driving.CacheMarketplace
}

func registerCacheRoutes(g *gin.RouterGroup, market driving.CacheMarketplace) {
	r := &cacheRoutes{market: market}
	g.POST("/set", r.set)
	g.GET("/get/:key", r.get)
	g.DELETE("/delete/:key", r.delete)
	g.POST("/clear", r.clear)
}

// set godoc
// @Summary Store a value
// @Tags Cache
// @Accept json
// @Produce json
// @Param request body CacheSetRequest true "Entry to store"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /cache/set [post]
// @Security Bearer
func (r *cacheRoutes) set(c *gin.Context) {
	var req CacheSetRequest
	if !bind(c, &req) {
		return
	}
	if len(req.Value) == 0 || bytes.Equal(bytes.TrimSpace(req.Value), []byte("null")) {
		failWith(c, http.StatusBadRequest, fmt.Errorf("%w: value is required", domain.ErrInvalidInput))
		return
	}
	if req.TTL < 0 {
		failWith(c, http.StatusBadRequest, fmt.Errorf("%w: ttl must not be negative", domain.ErrInvalidInput))
		return
	}

	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		failWith(c, http.StatusBadRequest, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}

	ttl := time.Duration(req.TTL * float64(time.Second))
	if err := r.market.Set(c.Request.Context(), req.Key, value, ttl); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("stored %q", req.Key)})
}

// get godoc
// @Summary Fetch a value
// @Tags Cache
// @Produce json
// @Param key path string true "Cache key"
// @Success 200 {object} CacheValueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cache/get/{key} [get]
// @Security Bearer
func (r *cacheRoutes) get(c *gin.Context) {
	key := c.Param("key")
	value, ok, err := r.market.Get(c.Request.Context(), key)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		fail(c, fmt.Errorf("%w: %s", domain.ErrCacheMiss, key))
		return
	}
	c.JSON(http.StatusOK, CacheValueResponse{Key: key, Value: value})
}

// delete godoc
// @Summary Delete a value
// @Tags Cache
// @Produce json
// @Param key path string true "Cache key"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /cache/delete/{key} [delete]
// @Security Bearer
func (r *cacheRoutes) delete(c *gin.Context) {
	key := c.Param("key")
	if err := r.market.Delete(c.Request.Context(), key); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("deleted %q", key)})
}

// clear godoc
// @Summary Remove every value
// @Tags Cache
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /cache/clear [post]
// @Security Bearer
func (r *cacheRoutes) clear(c *gin.Context) {
	if err := r.market.Clear(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "cleared"})
}
