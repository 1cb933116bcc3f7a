package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_usage_store.go -package=mocks versefinder/internal/storage UsageStore

import (
	"context"
	"database/sql"
	"fmt"
)

// UsageStore defines the interface for per-user daily usage counters.
type UsageStore interface {
	// Increment bumps the user's counter for the given day and returns
	// the new value. The first call on a day returns 1.
	Increment(ctx context.Context, userID, day string) (int, error)
	// Count returns the user's counter for the given day, 0 if absent.
	Count(ctx context.Context, userID, day string) (int, error)
}

// UsageRepo provides methods for usage counter operations.
// It implements the UsageStore interface.
type UsageRepo struct {
	db *sql.DB
}

// NewUsageRepo creates a new UsageRepo.
func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// Increment bumps the counter in a single statement so that concurrent
// requests cannot both observe the same pre-increment value.
func (r *UsageRepo) Increment(ctx context.Context, userID, day string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO usage_daily (user_id, day, count) VALUES (?, ?, 1)
		 ON CONFLICT (user_id, day) DO UPDATE SET count = count + 1
		 RETURNING count`,
		userID, day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return count, nil
}

// Count returns the user's counter for the given day, 0 if absent.
func (r *UsageRepo) Count(ctx context.Context, userID, day string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT count FROM usage_daily WHERE user_id = ? AND day = ?",
		userID, day,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query usage: %w", err)
	}
	return count, nil
}
