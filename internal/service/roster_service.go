package service

import (
	"context"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/repository"
)

// RosterService manages the top-level records: students and the lesson-type
// catalog. Neither carries a month scope and neither is ever updated or
// deleted outside the sample-data reset.
type RosterService struct {
	students   *repository.StudentRepository
	classTypes *repository.ClassTypeRepository
}

// NewRosterService creates a new RosterService.
func NewRosterService(students *repository.StudentRepository, classTypes *repository.ClassTypeRepository) *RosterService {
	return &RosterService{students: students, classTypes: classTypes}
}

// CreateStudent adds a student to the roster.
func (s *RosterService) CreateStudent(ctx context.Context, student *model.Student) error {
	return s.students.Create(ctx, student)
}

// CreateClassType adds a lesson type to the catalog.
func (s *RosterService) CreateClassType(ctx context.Context, classType *model.ClassType) error {
	return s.classTypes.Create(ctx, classType)
}
