package mocks

import (
	"context"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockCustomerRepository struct {
	mock.Mock
}

type MockSavedDetailsRepository struct {
	mock.Mock
}

type MockCatalogRepository[T domain.CatalogEntity] struct {
	mock.Mock
}

type MockProductFinder struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

func (m *MockProductFinder) Resolve(ctx context.Context, ref domain.ProductRef) (domain.Product, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Product), args.Error(1)
}

// Orders

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateShippingAddress(ctx context.Context, id uint64, address *string) error {
	args := m.Called(ctx, id, address)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveLineItem(ctx context.Context, item *domain.OrderLineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) FindLineItem(ctx context.Context, orderID, itemID uint64) (*domain.OrderLineItem, error) {
	args := m.Called(ctx, orderID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderLineItem), args.Error(1)
}

func (m *MockOrderRepository) UpdateLineItemQuantity(ctx context.Context, orderID, itemID uint64, quantity uint32) error {
	args := m.Called(ctx, orderID, itemID, quantity)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteLineItem(ctx context.Context, orderID, itemID uint64) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

func (m *MockOrderRepository) RecomputeTotal(ctx context.Context, orderID uint64) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Customers

func (m *MockCustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByAccountID(ctx context.Context, accountID uint64) (*domain.Customer, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Saved details

func (m *MockSavedDetailsRepository) SaveAddress(ctx context.Context, a *domain.SavedShippingAddress) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockSavedDetailsRepository) FindAddresses(ctx context.Context, customerID uint64) ([]domain.SavedShippingAddress, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedShippingAddress), args.Error(1)
}

func (m *MockSavedDetailsRepository) DeleteAddress(ctx context.Context, customerID, id uint64) error {
	args := m.Called(ctx, customerID, id)
	return args.Error(0)
}

func (m *MockSavedDetailsRepository) SaveCard(ctx context.Context, c *domain.SavedCard) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockSavedDetailsRepository) FindCards(ctx context.Context, customerID uint64) ([]domain.SavedCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedCard), args.Error(1)
}

func (m *MockSavedDetailsRepository) DeleteCard(ctx context.Context, customerID, id uint64) error {
	args := m.Called(ctx, customerID, id)
	return args.Error(0)
}

// Catalog

func (m *MockCatalogRepository[T]) Save(ctx context.Context, p *T) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCatalogRepository[T]) Update(ctx context.Context, id uint64, p *T) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *MockCatalogRepository[T]) SetImagePath(ctx context.Context, id uint64, imagePath string) error {
	args := m.Called(ctx, id, imagePath)
	return args.Error(0)
}

func (m *MockCatalogRepository[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCatalogRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCatalogRepository[T]) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
