package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jyasskin/920-checkin/internal/model"
)

// SignupRepository handles data access for the month-scoped signup records.
type SignupRepository struct {
	pool *pgxpool.Pool
}

// NewSignupRepository creates a new SignupRepository.
func NewSignupRepository(pool *pgxpool.Pool) *SignupRepository {
	return &SignupRepository{pool: pool}
}

// ListByMonth retrieves every signup row scoped to one month, ordered by ID.
// Rows are returned as stored, including kinds this version of the code does
// not know about; filtering those is the caller's forward-compatibility
// concern.
func (r *SignupRepository) ListByMonth(ctx context.Context, key model.MonthKey) ([]model.Signup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, class_id, student_id, default_role, presence, day, role
		 FROM signups WHERE month_key = $1 ORDER BY id`,
		key.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signups []model.Signup
	for rows.Next() {
		s := model.Signup{MonthKey: key}
		var defaultRole, role *string
		var presence []byte
		var day *time.Time
		if err := rows.Scan(&s.ID, &s.Kind, &s.ClassID, &s.StudentID,
			&defaultRole, &presence, &day, &role); err != nil {
			return nil, err
		}
		if defaultRole != nil {
			s.DefaultRole = model.Role(*defaultRole)
		}
		if role != nil {
			s.Role = model.Role(*role)
		}
		if day != nil {
			s.Day = model.DateOf(*day)
		}
		if presence != nil {
			if err := json.Unmarshal(presence, &s.Presence); err != nil {
				return nil, fmt.Errorf("decode presence for signup %d: %w", s.ID, err)
			}
		}
		signups = append(signups, s)
	}
	return signups, rows.Err()
}

// Create persists a signup under its month scope. The signup's variant
// invariants are checked here so that an invalid record can never reach the
// store.
func (r *SignupRepository) Create(ctx context.Context, key model.MonthKey, s *model.Signup) error {
	if key.IsZero() || s.MonthKey != key {
		return ErrNoMonthScope
	}
	if err := s.Validate(); err != nil {
		return err
	}

	var defaultRole, role *string
	var presence []byte
	var day *time.Time
	switch s.Kind {
	case model.SignupMonth:
		dr := string(s.DefaultRole)
		defaultRole = &dr
		entries := s.Presence
		if entries == nil {
			entries = []model.Presence{}
		}
		var err error
		presence, err = json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode presence: %w", err)
		}
	case model.SignupDay:
		ro := string(s.Role)
		role = &ro
		d := s.Day.Time()
		day = &d
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO signups (month_key, kind, class_id, student_id, default_role, presence, day, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8)
		 RETURNING id`,
		key.String(), string(s.Kind), s.ClassID, s.StudentID, defaultRole, presence, day, role,
	).Scan(&s.ID)
}
