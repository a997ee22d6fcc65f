package gormrepo

import (
	"context"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type savedDetailsRepo struct {
	db *gorm.DB
}

func NewSavedDetailsRepository(db *gorm.DB) repository.SavedDetailsRepository {
	return &savedDetailsRepo{db: db}
}

func (r *savedDetailsRepo) SaveAddress(ctx context.Context, a *domain.SavedShippingAddress) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		log.Printf("shipping address save error: %v", err)
		return err
	}
	return nil
}

func (r *savedDetailsRepo) FindAddresses(ctx context.Context, customerID uint64) ([]domain.SavedShippingAddress, error) {
	var out []domain.SavedShippingAddress
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *savedDetailsRepo) DeleteAddress(ctx context.Context, customerID, id uint64) error {
	return deleteOwned(r.db.WithContext(ctx), &domain.SavedShippingAddress{}, customerID, id)
}

func (r *savedDetailsRepo) SaveCard(ctx context.Context, c *domain.SavedCard) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		log.Printf("saved card save error: %v", err)
		return err
	}
	return nil
}

func (r *savedDetailsRepo) FindCards(ctx context.Context, customerID uint64) ([]domain.SavedCard, error) {
	var out []domain.SavedCard
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *savedDetailsRepo) DeleteCard(ctx context.Context, customerID, id uint64) error {
	return deleteOwned(r.db.WithContext(ctx), &domain.SavedCard{}, customerID, id)
}

func deleteOwned(db *gorm.DB, model any, customerID, id uint64) error {
	result := db.Where("customer_id = ? AND id = ?", customerID, id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
