package http

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	CustomerID      uint64  `json:"customerId" binding:"required"`
	ShippingAddress *string `json:"shippingAddress"`
}

type AddLineItemRequest struct {
	Kind      domain.ProductKind `json:"kind" binding:"required"`
	ProductID uint64             `json:"productId" binding:"required"`
	Quantity  uint32             `json:"quantity"`
}

func (r AddLineItemRequest) Ref() domain.ProductRef {
	return domain.ProductRef{Kind: r.Kind, ID: r.ProductID}
}

type UpdateQuantityRequest struct {
	Quantity uint32 `json:"quantity" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type UpdateShippingAddressRequest struct {
	ShippingAddress *string `json:"shippingAddress"`
}

type RecomputeTotalResponse struct {
	OrderID uint64          `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

type RegisterCustomerRequest struct {
	AccountID uint64 `json:"accountId" binding:"required"`
	domain.CustomerProfile
}

type SetImageRequest struct {
	Filename string `json:"filename" binding:"required"`
}

type CardRequest struct {
	HolderName string `json:"holderName" binding:"required"`
	CardNumber string `json:"cardNumber" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

func (r CardRequest) toDomain() *domain.SavedCard {
	return &domain.SavedCard{
		HolderName: r.HolderName,
		CardNumber: r.CardNumber,
		Expiry:     r.Expiry,
		CVV:        r.CVV,
	}
}

// CardResponse never carries the full number or the CVV.
type CardResponse struct {
	ID         uint64 `json:"id"`
	CustomerID uint64 `json:"customerId"`
	HolderName string `json:"holderName"`
	Last4      string `json:"last4"`
	Expiry     string `json:"expiry"`
}

func newCardResponse(c domain.SavedCard) CardResponse {
	return CardResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		HolderName: c.HolderName,
		Last4:      c.Last4(),
		Expiry:     c.Expiry,
	}
}

type ProductResponse struct {
	Kind    domain.ProductKind `json:"kind"`
	Product domain.Product     `json:"product"`
}
