package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/store"
)

func newTestCatalog(t *testing.T) (CategoryCatalog, *memCategoryStore) {
	t.Helper()
	categories := newMemCategoryStore()
	catalog, err := NewCategoryCatalog(categories, nil)
	require.NoError(t, err)
	return catalog, categories
}

func TestNewCategoryCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := NewCategoryCatalog(nil, nil)
	assert.Nil(t, catalog)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "categories")
}

func TestCategoryCatalog_CreateAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	first, err := catalog.Create(ctx, domain.NewCategoryParams{Name: "Groceries", Color: strPtr("green")})
	require.NoError(t, err)
	second, err := catalog.Create(ctx, domain.NewCategoryParams{Name: "Pharmacy"})
	require.NoError(t, err)

	_, err = catalog.Create(ctx, domain.NewCategoryParams{Name: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyCategoryName)

	all, err := catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestCategoryCatalog_StoreFailure(t *testing.T) {
	t.Parallel()
	categories := newMemCategoryStore()
	categories.err = errors.New("connection reset")
	catalog, err := NewCategoryCatalog(categories, nil)
	require.NoError(t, err)

	_, err = catalog.Create(context.Background(), domain.NewCategoryParams{Name: "Work"})
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create_category", se.Operation)

	_, err = catalog.ListAll(context.Background())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list_categories", se.Operation)
}

func TestCategoryCatalog_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, categories := newTestCatalog(t)

	c, err := catalog.Create(ctx, domain.NewCategoryParams{Name: "Home"})
	require.NoError(t, err)

	updated, err := catalog.Update(ctx, c.ID, domain.CategoryPatch{Icon: strPtr("house")})
	require.NoError(t, err)
	assert.Equal(t, "Home", updated.Name)
	assert.Equal(t, "house", *updated.Icon)

	_, err = catalog.Update(ctx, c.ID, domain.CategoryPatch{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrEmptyCategoryName)

	stored, err := categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", stored.Name)

	_, err = catalog.Update(ctx, 999, domain.CategoryPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestCategoryCatalog_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	c, err := catalog.Create(ctx, domain.NewCategoryParams{Name: "Work"})
	require.NoError(t, err)

	deleted, err := catalog.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = catalog.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
