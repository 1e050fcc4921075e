// Package store defines persistence interfaces for the farmer directory
// and their shared errors. Implementations live in
// internal/platform/postgres (database-backed) and in this package
// (seeded in-memory fallback).
package store

import (
	"context"
	"errors"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// ErrFarmerNotFound is returned when the requested farmer does not exist.
var ErrFarmerNotFound = errors.New("farmer not found")

// FarmerStore provides read access to the farmer directory.
type FarmerStore interface {
	// ListFarmers returns up to limit directory entries ordered by ID.
	ListFarmers(ctx context.Context, limit int) ([]domain.Farmer, error)

	// GetFarmer returns one farmer by ID, or ErrFarmerNotFound.
	GetFarmer(ctx context.Context, id int64) (domain.Farmer, error)
}
