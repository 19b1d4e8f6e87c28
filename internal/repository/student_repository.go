package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jyasskin/920-checkin/internal/model"
)

// StudentRepository handles roster data access for students.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// List retrieves all students, ordered by ID.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email FROM students ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		var email *string
		if err := rows.Scan(&s.ID, &s.Name, &email); err != nil {
			return nil, err
		}
		if email != nil {
			s.Email = *email
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Create inserts a new student. An empty email is stored as NULL.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	var email *string
	if s.Email != "" {
		email = &s.Email
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (name, email) VALUES ($1, $2) RETURNING id`,
		s.Name, email,
	).Scan(&s.ID)
}
