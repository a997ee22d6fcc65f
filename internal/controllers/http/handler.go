package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	orders    *services.OrderService
	customers *services.CustomerService
	catalog   *services.CatalogService
	cache     *listCache
}

// NewHandler wires the services to gin. rdb may be nil, which disables
// the catalog list cache.
func NewHandler(o *services.OrderService, cu *services.CustomerService, ca *services.CatalogService, rdb *redis.Client, cacheTTL time.Duration) *Handler {
	return &Handler{
		orders:    o,
		customers: cu,
		catalog:   ca,
		cache:     newListCache(rdb, cacheTTL),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.DELETE("/orders/:id", h.DeleteOrder)
	r.PUT("/orders/:id/status", h.UpdateStatus)
	r.PUT("/orders/:id/shipping-address", h.UpdateShippingAddress)
	r.POST("/orders/:id/recompute-total", h.RecomputeTotal)
	r.POST("/orders/:id/items", h.AddLineItem)
	r.GET("/orders/:id/items/:itemId", h.GetLineItem)
	r.PUT("/orders/:id/items/:itemId", h.UpdateLineItemQuantity)
	r.DELETE("/orders/:id/items/:itemId", h.RemoveLineItem)
	r.GET("/orders/:id/items/:itemId/product", h.GetLineItemProduct)

	h.registerCustomerRoutes(r)

	registerCatalog(r, h.catalog.VideoGames, h.cache)
	registerCatalog(r, h.catalog.Consoles, h.cache)
	registerCatalog(r, h.catalog.Accessories, h.cache)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.CustomerID, req.ShippingAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateShippingAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.UpdateShippingAddress(c.Request.Context(), id, req.ShippingAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) RecomputeTotal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	total, err := h.orders.RecomputeTotal(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecomputeTotalResponse{OrderID: id, Total: total})
}

func (h *Handler) AddLineItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.orders.AddLineItem(c.Request.Context(), id, req.Ref(), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetLineItem(c *gin.Context) {
	id, itemID, ok := lineItemParams(c)
	if !ok {
		return
	}
	item, err := h.orders.GetLineItem(c.Request.Context(), id, itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateLineItemQuantity(c *gin.Context) {
	id, itemID, ok := lineItemParams(c)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.orders.UpdateLineItemQuantity(c.Request.Context(), id, itemID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveLineItem(c *gin.Context) {
	id, itemID, ok := lineItemParams(c)
	if !ok {
		return
	}
	if err := h.orders.RemoveLineItem(c.Request.Context(), id, itemID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetLineItemProduct(c *gin.Context) {
	id, itemID, ok := lineItemParams(c)
	if !ok {
		return
	}
	p, err := h.orders.ResolveLineItemProduct(c.Request.Context(), id, itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductResponse{Kind: p.Ref().Kind, Product: p})
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

func lineItemParams(c *gin.Context) (uint64, uint64, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, 0, false
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return 0, 0, false
	}
	return id, itemID, true
}

func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": ve.Fields})
	case errors.Is(err, domain.ErrUnknownProductKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCustomerExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrLineItemNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
