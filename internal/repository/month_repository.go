package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jyasskin/920-checkin/internal/model"
)

// ErrNoMonthScope is returned when a month-scoped write is attempted without a
// valid month key. This is a programming error, not a recoverable condition.
var ErrNoMonthScope = errors.New("repository: month-scoped record written without a month scope")

// MonthRepository handles the month scope records that anchor all per-month
// classes and signups.
type MonthRepository struct {
	pool *pgxpool.Pool
}

// NewMonthRepository creates a new MonthRepository.
func NewMonthRepository(pool *pgxpool.Pool) *MonthRepository {
	return &MonthRepository{pool: pool}
}

// Ensure creates the month record if it does not exist yet. The insert commits
// on its own, so it stays durable even when a surrounding initialization
// transaction aborts and retries.
func (r *MonthRepository) Ensure(ctx context.Context, key model.MonthKey) error {
	if key.IsZero() {
		return ErrNoMonthScope
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO months (key) VALUES ($1) ON CONFLICT (key) DO NOTHING`,
		key.String())
	return err
}
