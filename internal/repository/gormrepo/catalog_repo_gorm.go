package gormrepo

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// catalogRepo serves one catalog table; T picks which.
type catalogRepo[T domain.CatalogEntity] struct {
	db *gorm.DB
}

func NewCatalogRepository[T domain.CatalogEntity](db *gorm.DB) repository.CatalogRepository[T] {
	return &catalogRepo[T]{db: db}
}

func NewVideoGameRepository(db *gorm.DB) repository.CatalogRepository[domain.VideoGame] {
	return NewCatalogRepository[domain.VideoGame](db)
}

func NewConsoleRepository(db *gorm.DB) repository.CatalogRepository[domain.Console] {
	return NewCatalogRepository[domain.Console](db)
}

func NewAccessoryRepository(db *gorm.DB) repository.CatalogRepository[domain.Accessory] {
	return NewCatalogRepository[domain.Accessory](db)
}

func (r *catalogRepo[T]) Save(ctx context.Context, p *T) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("%s save error: %v", kindOf[T](), err)
		return err
	}
	return nil
}

// Update overwrites every column except the key and the image path with
// the values in p.
func (r *catalogRepo[T]) Update(ctx context.Context, id uint64, p *T) error {
	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		Select("*").Omit("id", "image_path").
		Updates(p)
	if result.Error != nil {
		log.Printf("%s update error: %v", kindOf[T](), result.Error)
		return result.Error
	}
	return nil
}

// SetImagePath checks existence first; MySQL reports zero affected rows
// when the path is unchanged.
func (r *catalogRepo[T]) SetImagePath(ctx context.Context, id uint64, imagePath string) error {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return db.Model(new(T)).Where("id = ?", id).Update("image_path", imagePath).Error
}

func (r *catalogRepo[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var p T
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("%s FindByID error: %v", kindOf[T](), err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		log.Printf("%s FindAll error: %v", kindOf[T](), err)
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo[T]) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func kindOf[T domain.CatalogEntity]() domain.ProductKind {
	var zero T
	return zero.Ref().Kind
}
