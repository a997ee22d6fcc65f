package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrLineItemNotFound   = errors.New("order line item not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerExists     = errors.New("customer already registered for account")
	ErrProductNotFound    = errors.New("product not found")
	ErrUnknownProductKind = errors.New("unknown product kind")
	ErrAddressNotFound    = errors.New("saved shipping address not found")
	ErrCardNotFound       = errors.New("saved card not found")
)
