package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jyasskin/920-checkin/internal/model"
)

// ClassRepository handles data access for a month's classes.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// ListByMonth retrieves the classes scoped to one month, ordered by ID.
func (r *ClassRepository) ListByMonth(ctx context.Context, key model.MonthKey) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type_id, days FROM classes WHERE month_key = $1 ORDER BY id`,
		key.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClasses(rows, key)
}

// CreateIfAbsent runs one serializable transaction that reads the month's
// existing classes and inserts the candidates only when that read comes back
// empty. If classes already exist they are returned unchanged and the
// candidates are discarded. Concurrent callers for the same month are resolved
// by Postgres serialization conflicts (SQLSTATE 40001), not by any uniqueness
// index; callers are expected to retry or fall back to ListByMonth.
//
// Every candidate must already carry this month's scope.
func (r *ClassRepository) CreateIfAbsent(ctx context.Context, key model.MonthKey, candidates []model.Class) ([]model.Class, error) {
	if key.IsZero() {
		return nil, ErrNoMonthScope
	}
	for _, c := range candidates {
		if c.MonthKey != key {
			return nil, ErrNoMonthScope
		}
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, type_id, days FROM classes WHERE month_key = $1 ORDER BY id`,
		key.String())
	if err != nil {
		return nil, err
	}
	existing, err := scanClasses(rows, key)
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return existing, nil
	}

	for i := range candidates {
		days := make([]time.Time, len(candidates[i].Days))
		for j, d := range candidates[i].Days {
			days[j] = d.Time()
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO classes (month_key, type_id, days) VALUES ($1, $2, $3::date[]) RETURNING id`,
			key.String(), candidates[i].TypeID, days,
		).Scan(&candidates[i].ID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return candidates, nil
}

func scanClasses(rows pgx.Rows, key model.MonthKey) ([]model.Class, error) {
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		c := model.Class{MonthKey: key}
		var days []time.Time
		if err := rows.Scan(&c.ID, &c.TypeID, &days); err != nil {
			return nil, err
		}
		c.Days = make([]model.Date, len(days))
		for i, d := range days {
			c.Days[i] = model.DateOf(d)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
