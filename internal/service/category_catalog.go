package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// CategoryCatalog manages the task categories offered to clients.
type CategoryCatalog interface {
	Create(ctx context.Context, params domain.NewCategoryParams) (*domain.Category, error)

	// Update applies patch to an existing category. Returns
	// store.ErrCategoryNotFound for unknown ids.
	Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error)

	// Delete reports whether a category was removed; unknown ids give false.
	Delete(ctx context.Context, id int64) (bool, error)

	ListAll(ctx context.Context) ([]*domain.Category, error)
}

type categoryCatalogImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryCatalog creates a CategoryCatalog backed by categories.
func NewCategoryCatalog(categories store.CategoryStore, l *slog.Logger) (CategoryCatalog, error) {
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}

	return &categoryCatalogImpl{
		categories: categories,
		logger:     l.With(slog.String("component", "category_catalog")),
	}, nil
}

// Create implements CategoryCatalog.Create
func (c *categoryCatalogImpl) Create(
	ctx context.Context,
	params domain.NewCategoryParams,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	category, err := domain.NewCategory(params)
	if err != nil {
		log.Debug("rejected category", slog.String("error", err.Error()))
		return nil, err
	}

	if err := c.categories.Create(ctx, category); err != nil {
		if domain.IsValidationError(err) {
			return nil, err
		}
		return nil, NewServiceError("create_category", "failed to save category", err)
	}

	return category, nil
}

// Update implements CategoryCatalog.Update
func (c *categoryCatalogImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.CategoryPatch,
) (*domain.Category, error) {
	category, err := c.categories.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, NewServiceError("update_category", "failed to load category", err)
	}

	if err := category.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if err := c.categories.Update(ctx, category); err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrCategoryNotFound
		}
		if domain.IsValidationError(err) {
			return nil, err
		}
		return nil, NewServiceError("update_category", "failed to save category", err)
	}

	return category, nil
}

// Delete implements CategoryCatalog.Delete
func (c *categoryCatalogImpl) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := c.categories.Delete(ctx, id)
	if err != nil {
		return false, NewServiceError("delete_category", "failed to delete category", err)
	}
	return deleted, nil
}

// ListAll implements CategoryCatalog.ListAll
func (c *categoryCatalogImpl) ListAll(ctx context.Context) ([]*domain.Category, error) {
	categories, err := c.categories.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_categories", "failed to list categories", err)
	}
	return categories, nil
}
