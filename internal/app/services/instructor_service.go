package services

import (
	"context"

	"github.com/yigit/sportfit/internal/app/models"
)

// InstructorService defines the interface for instructor-related operations
type InstructorService interface {
	ListInstructors(ctx context.Context) ([]*models.InstructorProfile, error)
}

// instructorServiceImpl implements the InstructorService interface
type instructorServiceImpl struct {
	instructors InstructorStore
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(instructors InstructorStore) InstructorService {
	return &instructorServiceImpl{instructors: instructors}
}

// ListInstructors returns instructor profiles, most students first
func (s *instructorServiceImpl) ListInstructors(ctx context.Context) ([]*models.InstructorProfile, error) {
	return s.instructors.List(ctx)
}
