package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/repository"
)

// pgForeignKeyViolation is the SQLSTATE for a failed foreign-key reference.
const pgForeignKeyViolation = "23503"

// ErrUnknownReference is returned when a signup points at a class or student
// that does not exist.
var ErrUnknownReference = errors.New("signup references an unknown class or student")

// SignupService records students paying for classes, either for a whole month
// or for a single lesson.
type SignupService struct {
	signups *repository.SignupRepository
	cache   *MonthCache
	log     zerolog.Logger
}

// NewSignupService creates a new SignupService.
func NewSignupService(signups *repository.SignupRepository, cache *MonthCache, log zerolog.Logger) *SignupService {
	return &SignupService{
		signups: signups,
		cache:   cache,
		log:     log.With().Str("component", "signup_service").Logger(),
	}
}

// Create persists a signup under its month scope and drops that month's cached
// document. The record's variant invariants and month scope are enforced by
// the repository; dangling class/student references surface as
// ErrUnknownReference.
func (s *SignupService) Create(ctx context.Context, month model.MonthKey, signup *model.Signup) error {
	signup.MonthKey = month
	if err := s.signups.Create(ctx, month, signup); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrUnknownReference
		}
		return err
	}

	s.cache.Invalidate(ctx, month.String())
	s.log.Info().
		Str("month", month.String()).
		Str("kind", string(signup.Kind)).
		Int64("class_id", signup.ClassID).
		Int64("student_id", signup.StudentID).
		Msg("signup recorded")
	return nil
}
