// Package postgres provides the database-backed FarmerStore
// implementation using the pgx driver through database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avaolo/agri-gateway/internal/domain"
	"github.com/avaolo/agri-gateway/internal/store"
)

// defaultListLimit bounds unqualified directory listings.
const defaultListLimit = 100

// PostgresFarmerStore implements store.FarmerStore against PostgreSQL.
type PostgresFarmerStore struct {
	db *sql.DB
}

// NewPostgresFarmerStore creates a store over an initialized database
// connection. The caller owns the connection's lifecycle.
func NewPostgresFarmerStore(db *sql.DB) *PostgresFarmerStore {
	return &PostgresFarmerStore{db: db}
}

var _ store.FarmerStore = (*PostgresFarmerStore)(nil)

// ListFarmers implements store.FarmerStore.ListFarmers.
func (s *PostgresFarmerStore) ListFarmers(ctx context.Context, limit int) ([]domain.Farmer, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, farm_name, phone, location, farm_type, total_size_ha
		FROM farmers
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var farmers []domain.Farmer
	for rows.Next() {
		var f domain.Farmer
		if err := rows.Scan(&f.ID, &f.Name, &f.FarmName, &f.Phone, &f.Location, &f.FarmType, &f.TotalSizeHa); err != nil {
			return nil, fmt.Errorf("failed to scan farmer row: %w", err)
		}
		farmers = append(farmers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate farmer rows: %w", err)
	}
	return farmers, nil
}

// GetFarmer implements store.FarmerStore.GetFarmer.
func (s *PostgresFarmerStore) GetFarmer(ctx context.Context, id int64) (domain.Farmer, error) {
	var f domain.Farmer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, farm_name, phone, location, farm_type, total_size_ha
		FROM farmers
		WHERE id = $1`, id).
		Scan(&f.ID, &f.Name, &f.FarmName, &f.Phone, &f.Location, &f.FarmType, &f.TotalSizeHa)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Farmer{}, store.ErrFarmerNotFound
	}
	if err != nil {
		return domain.Farmer{}, fmt.Errorf("failed to get farmer %d: %w", id, err)
	}
	return f, nil
}
