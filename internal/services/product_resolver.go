package services

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ProductFinder dereferences a polymorphic product reference.
type ProductFinder interface {
	Resolve(ctx context.Context, ref domain.ProductRef) (domain.Product, error)
}

type productLookup func(ctx context.Context, id uint64) (domain.Product, error)

// ProductResolver resolves references through a fixed table keyed by
// product kind. Every call queries the catalog table again.
type ProductResolver struct {
	lookups map[domain.ProductKind]productLookup
}

var _ ProductFinder = (*ProductResolver)(nil)

func NewProductResolver(
	games repository.CatalogRepository[domain.VideoGame],
	consoles repository.CatalogRepository[domain.Console],
	accessories repository.CatalogRepository[domain.Accessory],
) *ProductResolver {
	return &ProductResolver{lookups: map[domain.ProductKind]productLookup{
		domain.KindVideoGame: lookupIn(games),
		domain.KindConsole:   lookupIn(consoles),
		domain.KindAccessory: lookupIn(accessories),
	}}
}

func lookupIn[T domain.CatalogEntity](repo repository.CatalogRepository[T]) productLookup {
	return func(ctx context.Context, id uint64) (domain.Product, error) {
		p, err := repo.FindByID(ctx, id)
		if err != nil || p == nil {
			return nil, err
		}
		return *p, nil
	}
}

func (r *ProductResolver) Resolve(ctx context.Context, ref domain.ProductRef) (domain.Product, error) {
	lookup, ok := r.lookups[ref.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProductKind, ref.Kind)
	}
	p, err := lookup(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, ref)
	}
	return p, nil
}
