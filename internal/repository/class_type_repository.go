package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jyasskin/920-checkin/internal/model"
)

// ClassTypeRepository handles data access for the lesson-type catalog.
type ClassTypeRepository struct {
	pool *pgxpool.Pool
}

// NewClassTypeRepository creates a new ClassTypeRepository.
func NewClassTypeRepository(pool *pgxpool.Pool) *ClassTypeRepository {
	return &ClassTypeRepository{pool: pool}
}

// List retrieves the full lesson-type catalog, ordered by ID.
func (r *ClassTypeRepository) List(ctx context.Context) ([]model.ClassType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, time_of_day FROM class_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []model.ClassType
	for rows.Next() {
		var t model.ClassType
		if err := rows.Scan(&t.ID, &t.Name, &t.Time); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Create inserts a new lesson type.
func (r *ClassTypeRepository) Create(ctx context.Context, t *model.ClassType) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_types (name, time_of_day) VALUES ($1, $2) RETURNING id`,
		t.Name, t.Time,
	).Scan(&t.ID)
}
