package services

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type CustomerService struct {
	repo  repository.CustomerRepository
	saved repository.SavedDetailsRepository
}

func NewCustomerService(r repository.CustomerRepository, saved repository.SavedDetailsRepository) *CustomerService {
	return &CustomerService{repo: r, saved: saved}
}

// Register creates the single customer profile of an account.
func (s *CustomerService) Register(ctx context.Context, accountID uint64, profile domain.CustomerProfile) (*domain.Customer, error) {
	c := &domain.Customer{AccountID: accountID}
	c.ApplyProfile(profile)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCustomerExists
	}

	if err := s.repo.Save(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrCustomerExists
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint64) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (s *CustomerService) GetByAccount(ctx context.Context, accountID uint64) (*domain.Customer, error) {
	c, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (s *CustomerService) UpdateProfile(ctx context.Context, id uint64, profile domain.CustomerProfile) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ApplyProfile(profile)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the customer together with orders and saved details.
func (s *CustomerService) Delete(ctx context.Context, id uint64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrCustomerNotFound
	}
	return err
}

func (s *CustomerService) AddShippingAddress(ctx context.Context, customerID uint64, a *domain.SavedShippingAddress) (*domain.SavedShippingAddress, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	a.CustomerID = customerID
	if err := domain.Validate(a); err != nil {
		return nil, err
	}
	if err := s.saved.SaveAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CustomerService) ListShippingAddresses(ctx context.Context, customerID uint64) ([]domain.SavedShippingAddress, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.saved.FindAddresses(ctx, customerID)
}

func (s *CustomerService) DeleteShippingAddress(ctx context.Context, customerID, id uint64) error {
	err := s.saved.DeleteAddress(ctx, customerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrAddressNotFound
	}
	return err
}

func (s *CustomerService) AddCard(ctx context.Context, customerID uint64, card *domain.SavedCard) (*domain.SavedCard, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	card.CustomerID = customerID
	if err := domain.Validate(card); err != nil {
		return nil, err
	}
	if err := s.saved.SaveCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CustomerService) ListCards(ctx context.Context, customerID uint64) ([]domain.SavedCard, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.saved.FindCards(ctx, customerID)
}

func (s *CustomerService) DeleteCard(ctx context.Context, customerID, id uint64) error {
	err := s.saved.DeleteCard(ctx, customerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrCardNotFound
	}
	return err
}
