package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/db"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/dberrors"
)

// SelectionRepository handles cart entries
type SelectionRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSelectionRepository creates a new SelectionRepository
func NewSelectionRepository(conn db.DBTX) *SelectionRepository {
	return &SelectionRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func scanSelection(row rowScanner) (*models.Selection, error) {
	s := &models.Selection{}
	if err := row.Scan(&s.ID, &s.StudentEmail, &s.ClassID, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// scanSelectionWithClass scans a selection joined with its class
func scanSelectionWithClass(row rowScanner) (*models.Selection, error) {
	s := &models.Selection{}
	c := &models.ClassOffering{}
	var status string
	err := row.Scan(
		&s.ID, &s.StudentEmail, &s.ClassID, &s.CreatedAt,
		&c.ID, &c.InstructorEmail, &c.InstructorName, &c.ClassName, &c.Picture, &c.Price,
		&c.Capacity, &c.AvailableSeats, &c.TotalEnrolled, &status, &c.Feedback, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = models.ClassStatus(status)
	s.Class = c
	return s, nil
}

// Create inserts a cart entry; a second entry for the same student and class fails
// with ErrAlreadySelected.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.Selection) error {
	sql, args, err := r.sb.Insert("selections").
		Columns("student_email", "class_id").
		Values(selection.StudentEmail, selection.ClassID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create selection query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&selection.ID, &selection.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "selections_student_class_key") {
			return apperrors.ErrAlreadySelected
		}
		return storeError("create selection", err)
	}
	return nil
}

// GetByID retrieves a cart entry
func (r *SelectionRepository) GetByID(ctx context.Context, id int64) (*models.Selection, error) {
	sql, args, err := r.sb.Select("id", "student_email", "class_id", "created_at").
		From("selections").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get selection query: %w", err)
	}

	selection, err := scanSelection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr("get selection", err, apperrors.ErrSelectionNotFound)
	}
	return selection, nil
}

// ListByStudent returns the student's cart entries with their classes, newest first
func (r *SelectionRepository) ListByStudent(ctx context.Context, email string) ([]*models.Selection, error) {
	cols := []string{"s.id", "s.student_email", "s.class_id", "s.created_at"}
	for _, c := range classColumns {
		cols = append(cols, "c."+c)
	}

	sql, args, err := r.sb.Select(cols...).
		From("selections s").
		Join("classes c ON c.id = s.class_id").
		Where(squirrel.Eq{"s.student_email": email}).
		OrderBy("s.created_at DESC", "s.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list selections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list selections", err)
	}
	selections, err := collect(rows, scanSelectionWithClass)
	if err != nil {
		return nil, storeError("scan selections", err)
	}
	return selections, nil
}

// Delete removes a cart entry
func (r *SelectionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("selections").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete selection query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storeError("delete selection", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSelectionNotFound
	}
	return nil
}
