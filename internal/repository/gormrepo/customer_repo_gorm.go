package gormrepo

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Save(ctx context.Context, c *domain.Customer) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		log.Printf("customer save error: %v", err)
		return err
	}
	return nil
}

// Update writes the profile columns only; the account link and the
// registration date are fixed at creation.
func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	result := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", c.ID).
		Select("phone", "address", "email", "postal_code").
		Updates(c)
	if result.Error != nil {
		log.Printf("customer update error: %v", result.Error)
		return result.Error
	}
	return nil
}

func (r *customerRepo) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *customerRepo) FindByAccountID(ctx context.Context, accountID uint64) (*domain.Customer, error) {
	return r.findOne(ctx, "account_id = ?", accountID)
}

func (r *customerRepo) findOne(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).Where(query, args...).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("customer find error: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := deleteOrders(tx, "customer_id = ?", id); err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&domain.SavedShippingAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&domain.SavedCard{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Customer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}
