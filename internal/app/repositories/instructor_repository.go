package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/db"
)

// InstructorRepository handles instructor profiles and their statistics
type InstructorRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(conn db.DBTX) *InstructorRepository {
	return &InstructorRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func scanInstructor(row rowScanner) (*models.InstructorProfile, error) {
	p := &models.InstructorProfile{}
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.PhotoURL, &p.NumberOfStudents); err != nil {
		return nil, err
	}
	return p, nil
}

// Ensure creates the profile for email if missing and returns it. Existing statistics
// are kept; name and photo are refreshed when given.
func (r *InstructorRepository) Ensure(ctx context.Context, email, name, photoURL string) (*models.InstructorProfile, error) {
	sql, args, err := r.sb.Insert("instructors").
		Columns("email", "name", "photo_url", "number_of_students").
		Values(email, name, photoURL, 0).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), instructors.name),
			photo_url = COALESCE(NULLIF(EXCLUDED.photo_url, ''), instructors.photo_url)
		RETURNING id, email, name, photo_url, number_of_students`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ensure instructor query: %w", err)
	}

	profile, err := scanInstructor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, storeError("ensure instructor", err)
	}
	return profile, nil
}

// List returns all instructor profiles, most students first
func (r *InstructorRepository) List(ctx context.Context) ([]*models.InstructorProfile, error) {
	sql, args, err := r.sb.Select("id", "email", "name", "photo_url", "number_of_students").
		From("instructors").
		OrderBy("number_of_students DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list instructors", err)
	}
	profiles, err := collect(rows, scanInstructor)
	if err != nil {
		return nil, storeError("scan instructors", err)
	}
	return profiles, nil
}
