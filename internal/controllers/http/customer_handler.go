package http

import (
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerCustomerRoutes(r *gin.Engine) {
	r.POST("/customers", h.RegisterCustomer)
	r.GET("/customers/:id", h.GetCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)
	r.DELETE("/customers/:id", h.DeleteCustomer)
	r.GET("/customers/:id/orders", h.ListCustomerOrders)
	r.GET("/customers/:id/addresses", h.ListAddresses)
	r.POST("/customers/:id/addresses", h.AddAddress)
	r.DELETE("/customers/:id/addresses/:addressId", h.DeleteAddress)
	r.GET("/customers/:id/cards", h.ListCards)
	r.POST("/customers/:id/cards", h.AddCard)
	r.DELETE("/customers/:id/cards/:cardId", h.DeleteCard)
	r.GET("/accounts/:accountId/customer", h.GetCustomerByAccount)
}

func (h *Handler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.customers.Register(c.Request.Context(), req.AccountID, req.CustomerProfile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) GetCustomerByAccount(c *gin.Context) {
	accountID, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	customer, err := h.customers.GetByAccount(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var profile domain.CustomerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.customers.UpdateProfile(c.Request.Context(), id, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCustomerOrders(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	orders, err := h.orders.ListCustomerOrders(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ListAddresses(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	addresses, err := h.customers.ListShippingAddresses(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if addresses == nil {
		addresses = []domain.SavedShippingAddress{}
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *Handler) AddAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var address domain.SavedShippingAddress
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address.ID = 0
	saved, err := h.customers.AddShippingAddress(c.Request.Context(), id, &address)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	addressID, ok := paramID(c, "addressId")
	if !ok {
		return
	}
	if err := h.customers.DeleteShippingAddress(c.Request.Context(), id, addressID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCards(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cards, err := h.customers.ListCards(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, newCardResponse(card))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AddCard(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	card, err := h.customers.AddCard(c.Request.Context(), id, req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCardResponse(*card))
}

func (h *Handler) DeleteCard(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cardID, ok := paramID(c, "cardId")
	if !ok {
		return
	}
	if err := h.customers.DeleteCard(c.Request.Context(), id, cardID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
