package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/repository"
)

// SampleDataService is the destructive reset tool: it wipes every record and
// installs a fixed fixture covering each entity and role combination. It is a
// maintenance operation and assumes exclusive access to the store while it
// runs.
type SampleDataService struct {
	pool     *pgxpool.Pool
	students *repository.StudentRepository
	types    *repository.ClassTypeRepository
	signups  *repository.SignupRepository
	schedule *ScheduleService
	cache    *MonthCache
	log      zerolog.Logger
	now      func() time.Time
}

// NewSampleDataService creates a new SampleDataService.
func NewSampleDataService(
	pool *pgxpool.Pool,
	students *repository.StudentRepository,
	types *repository.ClassTypeRepository,
	signups *repository.SignupRepository,
	schedule *ScheduleService,
	cache *MonthCache,
	log zerolog.Logger,
) *SampleDataService {
	return &SampleDataService{
		pool:     pool,
		students: students,
		types:    types,
		signups:  signups,
		schedule: schedule,
		cache:    cache,
		log:      log.With().Str("component", "sample_data").Logger(),
		now:      time.Now,
	}
}

// Install deletes all records, then installs the fixture: six students, four
// lesson types, the current month's classes, and six signups spread over that
// month's Thursdays. Running it twice converges to the same state.
func (s *SampleDataService) Install(ctx context.Context) error {
	if err := s.purge(ctx); err != nil {
		return fmt.Errorf("purge store: %w", err)
	}

	students := make([]*model.Student, 6)
	for i := range students {
		students[i] = &model.Student{Name: fmt.Sprintf("First%d Last%d", i+1, i+1)}
		if err := s.students.Create(ctx, students[i]); err != nil {
			return fmt.Errorf("seed student: %w", err)
		}
	}

	level1 := &model.ClassType{Name: "Level 1", Time: "20:20"}
	level2 := &model.ClassType{Name: "Level 2", Time: "19:20"}
	level3 := &model.ClassType{Name: "Level 3", Time: "20:20"}
	specialEx := &model.ClassType{Name: "Special Extensions", Time: "19:20"}
	types := []*model.ClassType{level1, level2, level3, specialEx}
	for _, t := range types {
		if err := s.types.Create(ctx, t); err != nil {
			return fmt.Errorf("seed class type %q: %w", t.Name, err)
		}
	}

	month := model.MonthOf(s.now())
	catalog := make([]model.ClassType, len(types))
	for i, t := range types {
		catalog[i] = *t
	}
	classes, err := s.schedule.InitializeClasses(ctx, month, catalog)
	if err != nil {
		return fmt.Errorf("initialize classes: %w", err)
	}
	classByType := make(map[int64]int64, len(classes))
	for _, c := range classes {
		classByType[c.TypeID] = c.ID
	}

	thursdays := month.Thursdays()
	fixture := []*model.Signup{
		{
			Kind:        model.SignupMonth,
			ClassID:     classByType[level3.ID],
			StudentID:   students[2].ID,
			DefaultRole: model.RoleLead,
			Presence: []model.Presence{
				{Day: thursdays[0], Role: model.RoleFollow},
				{Day: thursdays[1]},
			},
		},
		{
			Kind:      model.SignupDay,
			ClassID:   classByType[level2.ID],
			StudentID: students[2].ID,
			Day:       thursdays[0],
			Role:      model.RoleLead,
		},
		{
			Kind:        model.SignupMonth,
			ClassID:     classByType[specialEx.ID],
			StudentID:   students[4].ID,
			DefaultRole: model.RoleFollow,
		},
		{
			Kind:        model.SignupMonth,
			ClassID:     classByType[specialEx.ID],
			StudentID:   students[5].ID,
			DefaultRole: model.RoleLead,
		},
		{
			Kind:      model.SignupDay,
			ClassID:   classByType[level1.ID],
			StudentID: students[1].ID,
			Day:       thursdays[1],
			Role:      model.RoleFollow,
		},
		{
			Kind:      model.SignupDay,
			ClassID:   classByType[level1.ID],
			StudentID: students[1].ID,
			Day:       thursdays[2],
			Role:      model.RoleFollow,
		},
	}
	for _, signup := range fixture {
		signup.MonthKey = month
		if err := s.signups.Create(ctx, month, signup); err != nil {
			return fmt.Errorf("seed signup: %w", err)
		}
	}

	// The purge touched every month scope, so every cached document is stale,
	// not just the current month's.
	s.cache.InvalidateAll(ctx)
	s.log.Info().
		Str("month", month.String()).
		Int("students", len(students)).
		Int("class_types", len(types)).
		Int("classes", len(classes)).
		Int("signups", len(fixture)).
		Msg("sample data installed")
	return nil
}

// purge removes every record in the store inside one transaction, children
// before parents.
func (s *SampleDataService) purge(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"signups", "classes", "months", "students", "class_types"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}
