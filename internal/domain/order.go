package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order. Any status may be
// replaced by any other; there is no transition table.
var OrderStatuses = []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is a customer's cart until paid. Total is a cached value: it only
// changes when the total is recomputed, never on line item edits.
type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID      uint64          `json:"customerId" gorm:"not null;index"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime;<-:create"`
	ShippingAddress *string         `json:"shippingAddress,omitempty" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index" validate:"required,status"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	Items           []OrderLineItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func NewOrder(customerID uint64, shippingAddress *string) *Order {
	return &Order{
		CustomerID:      customerID,
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
		Total:           decimal.Zero,
	}
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%d", o.ID)
}

// LineItemsTotal sums the subtotals of the loaded items without touching
// the cached Total.
func (o *Order) LineItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderLineItem references a product by (kind, id) and keeps the unit
// price that applied when it was added.
type OrderLineItem struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64          `json:"orderId" gorm:"not null;index"`
	ProductKind ProductKind     `json:"productKind" gorm:"column:product_type_tag;type:varchar(20);not null;index:idx_line_item_product" validate:"required,product_kind"`
	ProductID   uint64          `json:"productId" gorm:"not null;index:idx_line_item_product" validate:"required"`
	Quantity    uint32          `json:"quantity" gorm:"not null;default:1" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null" validate:"price"`
}

func (li OrderLineItem) Product() ProductRef {
	return ProductRef{Kind: li.ProductKind, ID: li.ProductID}
}

func (li OrderLineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li OrderLineItem) String() string {
	return fmt.Sprintf("%d x %s", li.Quantity, li.Product())
}
