package services

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderService struct {
	repo      repository.OrderRepository
	customers repository.CustomerRepository
	products  ProductFinder
	publisher infra.Publisher
}

func NewOrderService(r repository.OrderRepository, c repository.CustomerRepository, p ProductFinder, pub infra.Publisher) *OrderService {
	return &OrderService{
		repo:      r,
		customers: c,
		products:  p,
		publisher: pub,
	}
}

// CreateOrder opens a pending order with a zero total.
func (u *OrderService) CreateOrder(ctx context.Context, customerID uint64, shippingAddress *string) (*domain.Order, error) {
	customer, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	order := domain.NewOrder(customerID, shippingAddress)
	if err := domain.Validate(order); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	u.publish(ctx, domain.EventOrderCreated, domain.NewOrderEvent(order))
	return order, nil
}

func (u *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderService) ListCustomerOrders(ctx context.Context, customerID uint64) ([]domain.Order, error) {
	customer, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return u.repo.FindByCustomerID(ctx, customerID)
}

// AddLineItem copies the product's current price into the new line item.
// Stock is not checked and the order total is left as is.
func (u *OrderService) AddLineItem(ctx context.Context, orderID uint64, ref domain.ProductRef, quantity uint32) (*domain.OrderLineItem, error) {
	if _, err := u.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	product, err := u.products.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		quantity = 1
	}
	item := &domain.OrderLineItem{
		OrderID:     orderID,
		ProductKind: ref.Kind,
		ProductID:   ref.ID,
		Quantity:    quantity,
		UnitPrice:   product.ListPrice(),
	}
	if err := domain.Validate(item); err != nil {
		return nil, err
	}
	if err := u.repo.SaveLineItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (u *OrderService) UpdateLineItemQuantity(ctx context.Context, orderID, itemID uint64, quantity uint32) (*domain.OrderLineItem, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Fields: map[string]string{"quantity": "min"}}
	}
	err := u.repo.UpdateLineItemQuantity(ctx, orderID, itemID, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrLineItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return u.GetLineItem(ctx, orderID, itemID)
}

func (u *OrderService) GetLineItem(ctx context.Context, orderID, itemID uint64) (*domain.OrderLineItem, error) {
	item, err := u.repo.FindLineItem(ctx, orderID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrLineItemNotFound
	}
	return item, nil
}

func (u *OrderService) RemoveLineItem(ctx context.Context, orderID, itemID uint64) error {
	err := u.repo.DeleteLineItem(ctx, orderID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrLineItemNotFound
	}
	return err
}

// ResolveLineItemProduct looks up the catalog row a line item points at.
func (u *OrderService) ResolveLineItemProduct(ctx context.Context, orderID, itemID uint64) (domain.Product, error) {
	item, err := u.GetLineItem(ctx, orderID, itemID)
	if err != nil {
		return nil, err
	}
	return u.products.Resolve(ctx, item.Product())
}

// RecomputeTotal stores the sum of the line item subtotals as the order
// total and returns it.
func (u *OrderService) RecomputeTotal(ctx context.Context, orderID uint64) (decimal.Decimal, error) {
	order, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := u.repo.RecomputeTotal(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return decimal.Zero, domain.ErrOrderNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	order.Total = total

	u.publish(ctx, domain.EventOrderTotalRecomputed, domain.NewOrderEvent(order))
	return total, nil
}

// UpdateStatus overwrites the status with any valid value; transitions are
// not restricted.
func (u *OrderService) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"status": "status"}}
	}
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := u.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	order.Status = status

	evt := domain.NewOrderEvent(order)
	evt.Previous = previous
	u.publish(ctx, domain.EventOrderStatusChanged, evt)
	return order, nil
}

func (u *OrderService) UpdateShippingAddress(ctx context.Context, id uint64, address *string) (*domain.Order, error) {
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.ShippingAddress = address
	if err := domain.Validate(order); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateShippingAddress(ctx, id, address); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes the order and its line items. Catalog rows stay.
func (u *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	u.publish(ctx, domain.EventOrderDeleted, domain.NewOrderEvent(order))
	return nil
}

func (u *OrderService) publish(ctx context.Context, routingKey string, evt domain.OrderEvent) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, routingKey, evt); err != nil {
		log.Printf("failed to publish %s for order %d: %v", routingKey, evt.OrderID, err)
	}
}
