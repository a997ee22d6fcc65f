package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated         = "order.created"
	EventOrderStatusChanged   = "order.status_changed"
	EventOrderTotalRecomputed = "order.total_recomputed"
	EventOrderDeleted         = "order.deleted"
)

type OrderEvent struct {
	OrderID    uint64          `json:"orderId"`
	CustomerID uint64          `json:"customerId"`
	Status     OrderStatus     `json:"status,omitempty"`
	Previous   OrderStatus     `json:"previousStatus,omitempty"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func NewOrderEvent(o *Order) OrderEvent {
	return OrderEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		OccurredAt: time.Now(),
	}
}
