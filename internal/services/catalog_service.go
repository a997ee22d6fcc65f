package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// Catalog manages one catalog table.
type Catalog[T domain.CatalogEntity] struct {
	repo repository.CatalogRepository[T]
}

func NewCatalog[T domain.CatalogEntity](repo repository.CatalogRepository[T]) *Catalog[T] {
	return &Catalog[T]{repo: repo}
}

func (c *Catalog[T]) Kind() domain.ProductKind {
	var zero T
	return zero.Ref().Kind
}

func (c *Catalog[T]) notFound(id uint64) error {
	return fmt.Errorf("%w: %s", domain.ErrProductNotFound, domain.ProductRef{Kind: c.Kind(), ID: id})
}

// Create inserts p as a new row. Any ID or image path it carries is
// dropped.
func (c *Catalog[T]) Create(ctx context.Context, p *T) (*T, error) {
	domain.ResetManaged(p)
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := c.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Catalog[T]) Get(ctx context.Context, id uint64) (*T, error) {
	p, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, c.notFound(id)
	}
	return p, nil
}

func (c *Catalog[T]) List(ctx context.Context) ([]T, error) {
	return c.repo.FindAll(ctx)
}

// Update replaces the descriptive fields, price and stock of a product.
// Line items already holding the product keep their snapshot price.
func (c *Catalog[T]) Update(ctx context.Context, id uint64, p *T) (*T, error) {
	if _, err := c.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := c.repo.Update(ctx, id, p); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

// SetImage records filename under the kind's upload directory. Storing the
// file itself is up to the caller.
func (c *Catalog[T]) SetImage(ctx context.Context, id uint64, filename string) (*T, error) {
	if filename == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"filename": "required"}}
	}
	err := c.repo.SetImagePath(ctx, id, domain.ImagePath(c.Kind(), filename))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, c.notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

func (c *Catalog[T]) Delete(ctx context.Context, id uint64) error {
	err := c.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.notFound(id)
	}
	return err
}

// CatalogService groups the three catalog tables and the resolver that
// dispatches between them.
type CatalogService struct {
	VideoGames  *Catalog[domain.VideoGame]
	Consoles    *Catalog[domain.Console]
	Accessories *Catalog[domain.Accessory]
	Resolver    *ProductResolver
}

func NewCatalogService(
	games repository.CatalogRepository[domain.VideoGame],
	consoles repository.CatalogRepository[domain.Console],
	accessories repository.CatalogRepository[domain.Accessory],
) *CatalogService {
	return &CatalogService{
		VideoGames:  NewCatalog(games),
		Consoles:    NewCatalog(consoles),
		Accessories: NewCatalog(accessories),
		Resolver:    NewProductResolver(games, consoles, accessories),
	}
}
