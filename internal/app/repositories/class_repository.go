package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/db"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/dberrors"
	"github.com/yigit/sportfit/internal/pkg/logger"
)

var classColumns = []string{
	"id", "instructor_email", "instructor_name", "class_name", "picture", "price",
	"capacity", "available_seats", "total_enrolled", "status", "feedback", "created_at", "updated_at",
}

// lockClassesSQL takes the row locks enrollments contend on, in a fixed order
const lockClassesSQL = `SELECT id FROM classes ORDER BY id FOR UPDATE`

// reconcileSeatsSQL recomputes seat counters from recorded payments for every drifted class
const reconcileSeatsSQL = `
WITH counts AS (
	SELECT c.id, COALESCE(p.enrolled, 0) AS enrolled
	FROM classes c
	LEFT JOIN (
		SELECT class_id, COUNT(*) AS enrolled FROM payments GROUP BY class_id
	) p ON p.class_id = c.id
)
UPDATE classes c
SET total_enrolled = counts.enrolled,
	available_seats = GREATEST(c.capacity - counts.enrolled, 0),
	updated_at = CURRENT_TIMESTAMP
FROM counts
WHERE c.id = counts.id
	AND (c.total_enrolled <> counts.enrolled
		OR c.available_seats <> GREATEST(c.capacity - counts.enrolled, 0))`

// ClassRepository handles class database operations
type ClassRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(conn db.Pool) *ClassRepository {
	return &ClassRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func scanClass(row rowScanner) (*models.ClassOffering, error) {
	c := &models.ClassOffering{}
	var status string
	err := row.Scan(
		&c.ID, &c.InstructorEmail, &c.InstructorName, &c.ClassName, &c.Picture, &c.Price,
		&c.Capacity, &c.AvailableSeats, &c.TotalEnrolled, &status, &c.Feedback, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = models.ClassStatus(status)
	return c, nil
}

// Create inserts a class. Status always starts pending and every seat is available.
func (r *ClassRepository) Create(ctx context.Context, class *models.ClassOffering) error {
	sql, args, err := r.sb.Insert("classes").
		Columns("instructor_email", "instructor_name", "class_name", "picture", "price",
			"capacity", "available_seats", "total_enrolled", "status").
		Values(class.InstructorEmail, class.InstructorName, class.ClassName, class.Picture, class.Price,
			class.Capacity, class.Capacity, 0, string(models.ClassStatusPending)).
		Suffix("RETURNING " + strings.Join(classColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	created, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsCheckViolation(err, "") {
			return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		logger.Error().Err(err).Str("instructor", class.InstructorEmail).Msg("Error creating class")
		return storeError("create class", err)
	}

	*class = *created
	return nil
}

// GetByID retrieves a class by id
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.ClassOffering, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr("get class", err, apperrors.ErrClassNotFound)
	}
	return class, nil
}

// List returns classes matching filter
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]*models.ClassOffering, error) {
	q := r.sb.Select(classColumns...).From("classes")

	if filter.InstructorEmail != "" {
		q = q.Where(squirrel.Eq{"instructor_email": filter.InstructorEmail})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where(squirrel.Eq{"status": statuses})
	}
	if filter.OrderByEnrolled {
		q = q.OrderBy("total_enrolled DESC", "id ASC")
	} else {
		q = q.OrderBy("id ASC")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list classes", err)
	}
	classes, err := collect(rows, scanClass)
	if err != nil {
		return nil, storeError("scan classes", err)
	}
	return classes, nil
}

// Update applies the non-nil fields of upd. A new capacity is rejected with
// ErrCapacityBelowUsage when it is lower than the number already enrolled.
func (r *ClassRepository) Update(ctx context.Context, id int64, upd models.ClassUpdate) (*models.ClassOffering, error) {
	q := r.sb.Update("classes").
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})

	if upd.ClassName != nil {
		q = q.Set("class_name", *upd.ClassName)
	}
	if upd.Picture != nil {
		q = q.Set("picture", *upd.Picture)
	}
	if upd.Price != nil {
		q = q.Set("price", *upd.Price)
	}
	if upd.Capacity != nil {
		q = q.Set("capacity", *upd.Capacity).
			Set("available_seats", squirrel.Expr("? - total_enrolled", *upd.Capacity)).
			Where("total_enrolled <= ?", *upd.Capacity)
	}

	sql, args, err := q.Suffix("RETURNING " + strings.Join(classColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err == nil {
		return class, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("classID", id).Msg("Error updating class")
		return nil, storeError("update class", err)
	}

	// Zero rows: either the class is gone or the capacity guard rejected the update
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.ErrCapacityBelowUsage
}

// Delete removes a class
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storeError("delete class", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// SetStatus moves the class from status `from` to `to`. It fails with ErrConflict when
// the class is no longer in `from`.
func (r *ClassRepository) SetStatus(ctx context.Context, id int64, from, to models.ClassStatus) (*models.ClassOffering, error) {
	sql, args, err := r.sb.Update("classes").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		Suffix("RETURNING " + strings.Join(classColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build set status query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err == nil {
		return class, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeError("set class status", err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.NewConflictError("class status changed concurrently")
}

// SetFeedback stores admin feedback without touching the status
func (r *ClassRepository) SetFeedback(ctx context.Context, id int64, feedback string) (*models.ClassOffering, error) {
	sql, args, err := r.sb.Update("classes").
		Set("feedback", feedback).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(classColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build set feedback query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr("set class feedback", err, apperrors.ErrClassNotFound)
	}
	return class, nil
}

// ReconcileSeats repairs seat counters from payment records and returns how many
// classes were corrected. The class rows are locked before counting, so the counting
// statement sees every payment committed by an enrollment that held one of those locks.
func (r *ClassRepository) ReconcileSeats(ctx context.Context) (int64, error) {
	var repaired int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockClassesSQL); err != nil {
			return storeError("lock classes", err)
		}
		tag, err := tx.Exec(ctx, reconcileSeatsSQL)
		if err != nil {
			return storeError("reconcile seats", err)
		}
		repaired = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return repaired, nil
}
