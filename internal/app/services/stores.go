package services

import (
	"context"

	"github.com/yigit/sportfit/internal/app/models"
)

// UserStore is the persistence the user and auth services depend on
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetRoleByEmail(ctx context.Context, email string) (models.RoleType, error)
	UpdateRole(ctx context.Context, id int64, role models.RoleType) (*models.User, error)
}

// ClassStore persists class offerings
type ClassStore interface {
	Create(ctx context.Context, class *models.ClassOffering) error
	GetByID(ctx context.Context, id int64) (*models.ClassOffering, error)
	List(ctx context.Context, filter models.ClassFilter) ([]*models.ClassOffering, error)
	Update(ctx context.Context, id int64, upd models.ClassUpdate) (*models.ClassOffering, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, from, to models.ClassStatus) (*models.ClassOffering, error)
	SetFeedback(ctx context.Context, id int64, feedback string) (*models.ClassOffering, error)
	ReconcileSeats(ctx context.Context) (int64, error)
}

// SelectionStore persists cart entries
type SelectionStore interface {
	Create(ctx context.Context, selection *models.Selection) error
	GetByID(ctx context.Context, id int64) (*models.Selection, error)
	ListByStudent(ctx context.Context, email string) ([]*models.Selection, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentStore reads payment records
type PaymentStore interface {
	ListByEmail(ctx context.Context, email string, newestFirst bool) ([]*models.PaymentRecord, error)
}

// InstructorStore persists instructor profiles
type InstructorStore interface {
	Ensure(ctx context.Context, email, name, photoURL string) (*models.InstructorProfile, error)
	List(ctx context.Context) ([]*models.InstructorProfile, error)
}

// EnrollmentStore applies an enrollment atomically
type EnrollmentStore interface {
	Enroll(ctx context.Context, e models.Enrollment) (*models.EnrollmentResult, error)
}
