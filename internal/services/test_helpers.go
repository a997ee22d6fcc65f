package services

import (
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func CreateMockOrder(id, customerID uint64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:         id,
		CustomerID: customerID,
		Status:     status,
		Total:      decimal.Zero,
		CreatedAt:  time.Now(),
	}
}

func CreateMockCustomer(id, accountID uint64) *domain.Customer {
	return &domain.Customer{
		ID:               id,
		AccountID:        accountID,
		RegistrationDate: time.Now(),
	}
}

func CreateMockVideoGame(id uint64, name, price string) *domain.VideoGame {
	return &domain.VideoGame{
		ID:          id,
		Name:        name,
		Developer:   "Test Studio",
		Genre:       "Action",
		ReleaseDate: time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC),
		Provider:    "Test Provider",
		Price:       decimal.RequireFromString(price),
		Stock:       TestStock,
	}
}

const (
	TestCustomerID = uint64(1)
	TestAccountID  = uint64(100)
	TestOrderID    = uint64(1)
	TestProductID  = uint64(1)
	TestGameName   = "Test Game"
	TestGamePrice  = "59.99"
	TestStock      = 5
)
