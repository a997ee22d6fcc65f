package domain

import (
	"fmt"
	"time"
)

// Customer is the storefront profile attached to one authentication
// account. Deleting it removes its orders and saved details.
type Customer struct {
	ID               uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID        uint64    `json:"accountId" gorm:"not null;uniqueIndex" validate:"required"`
	Phone            *string   `json:"phone,omitempty" gorm:"type:varchar(15)" validate:"omitempty,max=15"`
	Address          *string   `json:"address,omitempty" gorm:"type:varchar(200)" validate:"omitempty,max=200"`
	Email            *string   `json:"email,omitempty" gorm:"type:varchar(50)" validate:"omitempty,max=50,email"`
	PostalCode       *string   `json:"postalCode,omitempty" gorm:"type:varchar(10)" validate:"omitempty,max=10"`
	RegistrationDate time.Time `json:"registrationDate" gorm:"type:date;autoCreateTime;<-:create"`

	Orders            []Order                `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ShippingAddresses []SavedShippingAddress `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Cards             []SavedCard            `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// CustomerProfile holds the fields a customer may edit after registration.
type CustomerProfile struct {
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Email      *string `json:"email"`
	PostalCode *string `json:"postalCode"`
}

func (c *Customer) ApplyProfile(p CustomerProfile) {
	c.Phone = p.Phone
	c.Address = p.Address
	c.Email = p.Email
	c.PostalCode = p.PostalCode
}

type SavedShippingAddress struct {
	ID         uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64 `json:"customerId" gorm:"not null;index"`
	FullName   string `json:"fullName" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Street     string `json:"street" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	City       string `json:"city" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	PostalCode string `json:"postalCode" gorm:"type:varchar(10);not null" validate:"required,max=10"`
}

func (a SavedShippingAddress) String() string {
	return fmt.Sprintf("%s, %s", a.Street, a.City)
}

// SavedCard keeps the card number and CVV as plain text.
//
// FIXME: this must be tokenized or encrypted before any production use.
// The JSON form hides both fields.
type SavedCard struct {
	ID         uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64 `json:"customerId" gorm:"not null;index"`
	HolderName string `json:"holderName" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	CardNumber string `json:"-" gorm:"type:varchar(16);not null" validate:"required,number,max=16"`
	Expiry     string `json:"expiry" gorm:"type:varchar(5);not null" validate:"required,expiry"`
	CVV        string `json:"-" gorm:"column:cvv;type:varchar(4);not null" validate:"required,number,min=3,max=4"`
}

func (c SavedCard) Last4() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	return c.CardNumber[len(c.CardNumber)-4:]
}

func (c SavedCard) String() string {
	return "Card ending in " + c.Last4()
}
