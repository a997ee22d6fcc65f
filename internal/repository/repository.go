package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned by mutations that matched no row. Finders
	// return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert hits a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

type CustomerRepository interface {
	Save(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id uint64) (*domain.Customer, error)
	FindByAccountID(ctx context.Context, accountID uint64) (*domain.Customer, error)
	// Delete removes the customer with its orders, line items, saved
	// addresses and saved cards.
	Delete(ctx context.Context, id uint64) error
}

type SavedDetailsRepository interface {
	SaveAddress(ctx context.Context, a *domain.SavedShippingAddress) error
	FindAddresses(ctx context.Context, customerID uint64) ([]domain.SavedShippingAddress, error)
	DeleteAddress(ctx context.Context, customerID, id uint64) error
	SaveCard(ctx context.Context, c *domain.SavedCard) error
	FindCards(ctx context.Context, customerID uint64) ([]domain.SavedCard, error)
	DeleteCard(ctx context.Context, customerID, id uint64) error
}

// CatalogRepository stores one of the three catalog tables.
type CatalogRepository[T domain.CatalogEntity] interface {
	Save(ctx context.Context, p *T) error
	Update(ctx context.Context, id uint64, p *T) error
	SetImagePath(ctx context.Context, id uint64, imagePath string) error
	FindByID(ctx context.Context, id uint64) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uint64) error
}

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	// FindByID loads the order together with its line items.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
	UpdateShippingAddress(ctx context.Context, id uint64, address *string) error
	// Delete removes the order and its line items.
	Delete(ctx context.Context, id uint64) error

	SaveLineItem(ctx context.Context, item *domain.OrderLineItem) error
	FindLineItem(ctx context.Context, orderID, itemID uint64) (*domain.OrderLineItem, error)
	UpdateLineItemQuantity(ctx context.Context, orderID, itemID uint64, quantity uint32) error
	DeleteLineItem(ctx context.Context, orderID, itemID uint64) error

	// RecomputeTotal sums the order's line item subtotals, stores the sum
	// as the order total and returns it.
	RecomputeTotal(ctx context.Context, orderID uint64) (decimal.Decimal, error)
}
