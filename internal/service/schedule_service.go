package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/repository"
)

// pgSerializationFailure is the SQLSTATE Postgres reports when a serializable
// transaction loses a race and must be retried.
const pgSerializationFailure = "40001"

// MonthDocument is the assembled view of one month: the full roster and
// catalog plus the classes and signups scoped to that month.
type MonthDocument struct {
	Month      model.MonthKey    `json:"month"`
	Students   []model.Student   `json:"students"`
	ClassTypes []model.ClassType `json:"class_types"`
	Classes    []model.Class     `json:"classes"`
	Signups    []model.Signup    `json:"signups"`
}

// ScheduleService assembles month documents and lazily initializes a month's
// classes from the lesson-type catalog.
type ScheduleService struct {
	students   *repository.StudentRepository
	classTypes *repository.ClassTypeRepository
	months     *repository.MonthRepository
	classes    *repository.ClassRepository
	signups    *repository.SignupRepository
	cache      *MonthCache
	log        zerolog.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	students *repository.StudentRepository,
	classTypes *repository.ClassTypeRepository,
	months *repository.MonthRepository,
	classes *repository.ClassRepository,
	signups *repository.SignupRepository,
	cache *MonthCache,
	log zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		students:   students,
		classTypes: classTypes,
		months:     months,
		classes:    classes,
		signups:    signups,
		cache:      cache,
		log:        log.With().Str("component", "schedule_service").Logger(),
	}
}

// MonthData builds the document for one month. The roster, catalog, and the
// month's scoped records have no data dependency on each other, so all four
// reads are issued concurrently and joined at assembly. When the month has no
// classes yet, InitializeClasses fills them in from the fetched catalog.
func (s *ScheduleService) MonthData(ctx context.Context, month model.MonthKey) (*MonthDocument, error) {
	if doc, ok := s.cache.Get(ctx, month.String()); ok {
		return doc, nil
	}

	var (
		students   []model.Student
		classTypes []model.ClassType
		classes    []model.Class
		signups    []model.Signup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.students.List(gctx)
		return
	})
	g.Go(func() (err error) {
		classTypes, err = s.classTypes.List(gctx)
		return
	})
	g.Go(func() (err error) {
		classes, err = s.classes.ListByMonth(gctx, month)
		return
	})
	g.Go(func() (err error) {
		signups, err = s.signups.ListByMonth(gctx, month)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch month %s: %w", month, err)
	}

	if len(classes) == 0 {
		var err error
		classes, err = s.InitializeClasses(ctx, month, classTypes)
		if err != nil {
			return nil, err
		}
	}

	doc := &MonthDocument{
		Month:      month,
		Students:   students,
		ClassTypes: classTypes,
		Classes:    classes,
		Signups:    s.knownSignups(signups),
	}
	if doc.Students == nil {
		doc.Students = []model.Student{}
	}
	if doc.ClassTypes == nil {
		doc.ClassTypes = []model.ClassType{}
	}
	if doc.Classes == nil {
		doc.Classes = []model.Class{}
	}

	s.cache.Set(ctx, month.String(), doc)
	return doc, nil
}

// InitializeClasses idempotently creates one class per catalog entry for a
// month, each defaulting to the month's Thursdays. The month record itself is
// ensured outside the transaction so it stays durable across retries. A lost
// serialization race is retried once; if that also fails, a plain read of the
// month's classes is trusted instead, on the assumption that a concurrent
// initializer won.
func (s *ScheduleService) InitializeClasses(ctx context.Context, month model.MonthKey, classTypes []model.ClassType) ([]model.Class, error) {
	if err := s.months.Ensure(ctx, month); err != nil {
		return nil, fmt.Errorf("ensure month %s: %w", month, err)
	}

	thursdays := month.Thursdays()
	candidates := make([]model.Class, len(classTypes))
	for i, t := range classTypes {
		candidates[i] = model.Class{
			MonthKey: month,
			TypeID:   t.ID,
			Days:     thursdays,
		}
	}

	classes, err := s.classes.CreateIfAbsent(ctx, month, candidates)
	if isSerializationFailure(err) {
		classes, err = s.classes.CreateIfAbsent(ctx, month, candidates)
	}
	if err == nil {
		return classes, nil
	}
	if !isSerializationFailure(err) {
		return nil, fmt.Errorf("initialize classes for %s: %w", month, err)
	}

	s.log.Error().Str("month", month.String()).
		Msg("class insertion failed repeatedly, assuming a concurrent initializer won")
	fallback, readErr := s.classes.ListByMonth(ctx, month)
	if readErr != nil {
		return nil, fmt.Errorf("initialize classes for %s: fallback read: %w", month, readErr)
	}
	return acceptFallback(month, fallback, err)
}

// acceptFallback decides whether a plain read can stand in for a failed
// initialization transaction. Only a non-empty result proves a concurrent
// initializer won; an empty one means the classes were never inserted, so the
// original failure surfaces instead of an empty month being served (and
// cached) as truth.
func acceptFallback(month model.MonthKey, classes []model.Class, cause error) ([]model.Class, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("initialize classes for %s: fallback read found no classes: %w", month, cause)
	}
	return classes, nil
}

// knownSignups drops records whose kind this version does not understand.
// Unknown kinds are logged and skipped so that newer record types never break
// older readers.
func (s *ScheduleService) knownSignups(signups []model.Signup) []model.Signup {
	known := make([]model.Signup, 0, len(signups))
	for _, su := range signups {
		switch su.Kind {
		case model.SignupMonth, model.SignupDay:
			known = append(known, su)
		default:
			s.log.Error().Int64("signup_id", su.ID).Str("kind", string(su.Kind)).
				Msg("skipping signup of unknown kind")
		}
	}
	return known
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}
