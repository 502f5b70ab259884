package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// PostgresCategoryStore implements store.CategoryStore on PostgreSQL.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a category store on db. If logger is nil,
// the default logger is used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

const categoryColumns = `id, name, icon, color`

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("category validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO categories (name, icon, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, c.Name, nullString(c.Icon), nullString(c.Color)).Scan(&c.ID)
	if err != nil {
		log.Error("failed to create category",
			slog.String("error", err.Error()))
		return store.NewStoreError("category", "create", "insert failed", MapError(err, nil))
	}

	log.Info("category created", slog.Int64("category_id", c.ID))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err, store.ErrCategoryNotFound)
		if store.IsNotFoundError(mapped) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, mapped
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, store.NewStoreError("category", "get", "query failed", mapped)
	}

	return c, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, c *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("category validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("category_id", c.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, icon = $2, color = $3 WHERE id = $4`,
		c.Name, nullString(c.Icon), nullString(c.Color), c.ID,
	)
	if err != nil {
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", c.ID))
		return store.NewStoreError("category", "update", "update failed", MapError(err, nil))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return store.NewStoreError("category", "update", "rows affected", err)
	}
	if n == 0 {
		log.Debug("category not found for update", slog.Int64("category_id", c.ID))
		return store.ErrCategoryNotFound
	}

	log.Info("category updated", slog.Int64("category_id", c.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete. Tasks labeled with the
// category name keep their label.
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return false, store.NewStoreError("category", "delete", "delete failed", MapError(err, nil))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return false, store.NewStoreError("category", "delete", "rows affected", err)
	}

	log.Info("category delete executed",
		slog.Int64("category_id", id),
		slog.Bool("deleted", n > 0))
	return n > 0, nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "list", "query failed", MapError(err, nil))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("category", "list", "scan failed", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "list", "iteration failed", err)
	}

	return categories, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var icon, color sql.NullString

	if err := row.Scan(&c.ID, &c.Name, &icon, &color); err != nil {
		return nil, err
	}
	if icon.Valid {
		c.Icon = &icon.String
	}
	if color.Valid {
		c.Color = &color.String
	}
	return &c, nil
}
