package usecase

import (
	"context"
	"net/url"
	"strconv"

	"marketplace_client/internal/clients"
	"marketplace_client/internal/domain"

	"github.com/sirupsen/logrus"
)

// catalogUseCase implements the domain.CatalogUseCase interface over the
// product endpoints.
type catalogUseCase struct {
	api *clients.APIClient
	log *logrus.Logger
}

// NewCatalogUseCase creates a new instance of catalogUseCase.
func NewCatalogUseCase(api *clients.APIClient, logger *logrus.Logger) domain.CatalogUseCase {
	return &catalogUseCase{
		api: api,
		log: logger,
	}
}

// ListProducts fetches the listing narrowed by filters. Only fields that
// are actually set become query parameters; a price bound of 0 is set and
// is sent. Bounds are passed through unvalidated — an inverted range is the
// server's empty set to return. Result order is the server's.
func (uc *catalogUseCase) ListProducts(ctx context.Context, filters domain.ProductFilters) ([]domain.Product, error) {
	query := buildFilterQuery(filters)
	uc.log.Infof("Use Case: Listing products (query: %q)", query.Encode())

	var products []domain.Product
	if err := uc.api.Get(ctx, "/products", query, &products); err != nil {
		uc.log.Warnf("Use Case: Product listing failed: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Listed %d products", len(products))
	return products, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		uc.log.Warn("Use Case: Get product failed - empty product ID")
		return nil, domain.NewValidationError("product ID is required")
	}
	uc.log.Infof("Use Case: Fetching product ID: %s", id)

	var product domain.Product
	if err := uc.api.Get(ctx, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		uc.log.Warnf("Use Case: Failed to fetch product %s: %v", id, err)
		return nil, err
	}
	return &product, nil
}

func (uc *catalogUseCase) ListCategories(ctx context.Context) ([]string, error) {
	uc.log.Info("Use Case: Listing categories")

	var categories []string
	if err := uc.api.Get(ctx, "/products/categories", nil, &categories); err != nil {
		uc.log.Warnf("Use Case: Category listing failed: %v", err)
		return nil, err
	}
	return categories, nil
}

// buildFilterQuery returns nil for an empty filter set so the request
// carries no query string at all.
func buildFilterQuery(filters domain.ProductFilters) url.Values {
	if filters.IsZero() {
		return nil
	}
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*filters.MaxPrice, 'f', -1, 64))
	}
	return query
}
