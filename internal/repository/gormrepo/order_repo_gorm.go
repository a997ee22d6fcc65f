package gormrepo

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("order FindByCustomerID error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	return r.updateColumn(ctx, id, "status", status)
}

func (r *orderRepo) UpdateShippingAddress(ctx context.Context, id uint64, address *string) error {
	return r.updateColumn(ctx, id, "shipping_address", address)
}

func (r *orderRepo) updateColumn(ctx context.Context, id uint64, column string, value any) error {
	var count int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return db.Model(&domain.Order{}).Where("id = ?", id).Update(column, value).Error
}

func (r *orderRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := deleteOrders(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// deleteOrders removes the matching orders with their line items and
// returns how many orders went.
func deleteOrders(tx *gorm.DB, query string, args ...any) (int, error) {
	var ids []uint64
	if err := tx.Model(&domain.Order{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := tx.Where("order_id IN ?", ids).Delete(&domain.OrderLineItem{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("id IN ?", ids).Delete(&domain.Order{}).Error; err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (r *orderRepo) SaveLineItem(ctx context.Context, item *domain.OrderLineItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("line item save error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) FindLineItem(ctx context.Context, orderID, itemID uint64) (*domain.OrderLineItem, error) {
	var item domain.OrderLineItem
	err := r.db.WithContext(ctx).Where("order_id = ? AND id = ?", orderID, itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *orderRepo) UpdateLineItemQuantity(ctx context.Context, orderID, itemID uint64, quantity uint32) error {
	item, err := r.FindLineItem(ctx, orderID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return repository.ErrNotFound
	}
	return r.db.WithContext(ctx).Model(item).Update("quantity", quantity).Error
}

func (r *orderRepo) DeleteLineItem(ctx context.Context, orderID, itemID uint64) error {
	result := r.db.WithContext(ctx).Where("order_id = ? AND id = ?", orderID, itemID).Delete(&domain.OrderLineItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RecomputeTotal reads the items and writes the total in one transaction.
// No row lock is taken, so an item written concurrently may be missed.
func (r *orderRepo) RecomputeTotal(ctx context.Context, orderID uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.Select("id").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Find(&order.Items).Error; err != nil {
			return err
		}
		total = order.LineItemsTotal()
		return tx.Model(&domain.Order{}).Where("id = ?", orderID).Update("total", total).Error
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("order RecomputeTotal error: %v", err)
		}
		return decimal.Zero, err
	}
	return total, nil
}
