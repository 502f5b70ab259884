package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// PostgresLocationStore implements store.LocationStore on PostgreSQL.
type PostgresLocationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLocationStore creates a location store on db, which may be a
// pool or a transaction. If logger is nil, the default logger is used.
func NewPostgresLocationStore(db store.DBTX, logger *slog.Logger) *PostgresLocationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLocationStore{
		db:     db,
		logger: logger.With(slog.String("component", "location_store")),
	}
}

// Ensure PostgresLocationStore implements store.LocationStore interface
var _ store.LocationStore = (*PostgresLocationStore)(nil)

const locationColumns = `id, name, latitude, longitude, geofence_radius`

// Create implements store.LocationStore.Create
func (s *PostgresLocationStore) Create(ctx context.Context, loc *domain.Location) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loc.Validate(); err != nil {
		log.Warn("location validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO locations (name, latitude, longitude, geofence_radius)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		nullString(loc.Name),
		loc.Latitude,
		loc.Longitude,
		loc.GeofenceRadius,
	).Scan(&loc.ID)
	if err != nil {
		log.Error("failed to create location",
			slog.String("error", err.Error()))
		return store.NewStoreError("location", "create", "insert failed", MapError(err, nil))
	}

	log.Info("location created",
		slog.Int64("location_id", loc.ID),
		slog.Int("geofence_radius", loc.GeofenceRadius))
	return nil
}

// GetByID implements store.LocationStore.GetByID
func (s *PostgresLocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	loc, err := scanLocation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err, store.ErrLocationNotFound)
		if store.IsNotFoundError(mapped) {
			log.Debug("location not found", slog.Int64("location_id", id))
			return nil, mapped
		}
		log.Error("failed to get location by ID",
			slog.String("error", err.Error()),
			slog.Int64("location_id", id))
		return nil, store.NewStoreError("location", "get", "query failed", mapped)
	}

	return loc, nil
}

// Update implements store.LocationStore.Update
func (s *PostgresLocationStore) Update(ctx context.Context, loc *domain.Location) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loc.Validate(); err != nil {
		log.Warn("location validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("location_id", loc.ID))
		return err
	}

	query := `
		UPDATE locations
		SET name = $1, latitude = $2, longitude = $3, geofence_radius = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		nullString(loc.Name),
		loc.Latitude,
		loc.Longitude,
		loc.GeofenceRadius,
		loc.ID,
	)
	if err != nil {
		log.Error("failed to update location",
			slog.String("error", err.Error()),
			slog.Int64("location_id", loc.ID))
		return store.NewStoreError("location", "update", "update failed", MapError(err, nil))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return store.NewStoreError("location", "update", "rows affected", err)
	}
	if n == 0 {
		log.Debug("location not found for update", slog.Int64("location_id", loc.ID))
		return store.ErrLocationNotFound
	}

	log.Info("location updated", slog.Int64("location_id", loc.ID))
	return nil
}

// Delete implements store.LocationStore.Delete. Tasks referencing the
// location keep their location_id.
func (s *PostgresLocationStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete location",
			slog.String("error", err.Error()),
			slog.Int64("location_id", id))
		return false, store.NewStoreError("location", "delete", "delete failed", MapError(err, nil))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return false, store.NewStoreError("location", "delete", "rows affected", err)
	}

	log.Info("location delete executed",
		slog.Int64("location_id", id),
		slog.Bool("deleted", n > 0))
	return n > 0, nil
}

// List implements store.LocationStore.List
func (s *PostgresLocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY id`
	return s.query(ctx, "list", query)
}

// ListByIDs implements store.LocationStore.ListByIDs
func (s *PostgresLocationStore) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Location, error) {
	if len(ids) == 0 {
		return []*domain.Location{}, nil
	}
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ANY($1) ORDER BY id`
	return s.query(ctx, "list_by_ids", query, ids)
}

func (s *PostgresLocationStore) query(
	ctx context.Context,
	operation, query string,
	args ...any,
) ([]*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query locations",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("location", operation, "query failed", MapError(err, nil))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	locations := []*domain.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			log.Error("failed to scan location row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("location", operation, "scan failed", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("location", operation, "iteration failed", err)
	}

	log.Debug("locations listed",
		slog.String("operation", operation),
		slog.Int("count", len(locations)))
	return locations, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var loc domain.Location
	var name sql.NullString

	if err := row.Scan(&loc.ID, &name, &loc.Latitude, &loc.Longitude, &loc.GeofenceRadius); err != nil {
		return nil, err
	}
	if name.Valid {
		loc.Name = &name.String
	}
	return &loc, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
