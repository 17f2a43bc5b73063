package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/db"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/dberrors"
	"github.com/yigit/sportfit/internal/pkg/logger"
)

const (
	findPaymentBySelectionSQL = `SELECT id, selection_id, email, instructor_email, class_id, class_name, amount, transaction_id, date
FROM payments WHERE selection_id = $1`

	lockSelectionSQL = `SELECT student_email, class_id FROM selections WHERE id = $1 FOR UPDATE`

	consumeSeatSQL = `UPDATE classes
SET total_enrolled = total_enrolled + 1, available_seats = available_seats - 1, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND available_seats > 0
RETURNING instructor_email, instructor_name, class_name`

	classExistsSQL = `SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1)`

	countStudentSQL = `INSERT INTO instructors (email, name, number_of_students) VALUES ($1, $2, 1)
ON CONFLICT (email) DO UPDATE SET number_of_students = instructors.number_of_students + 1`

	insertPaymentSQL = `INSERT INTO payments (selection_id, email, instructor_email, class_id, class_name, amount, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, selection_id, email, instructor_email, class_id, class_name, amount, transaction_id, date`

	deleteSelectionSQL = `DELETE FROM selections WHERE id = $1`
)

// errAlreadyRecorded aborts an enrollment whose payment was inserted by a concurrent request
var errAlreadyRecorded = errors.New("payment already recorded")

// EnrollmentRepository turns a confirmed payment into an enrollment in one transaction
type EnrollmentRepository struct {
	db db.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(pool db.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: pool}
}

// Enroll consumes a seat, counts the student for the instructor, records the payment
// and removes the cart entry, all or nothing. The selection id is the idempotency key:
// when a payment already exists for it the stored record is returned with Replayed set
// and nothing is written.
func (r *EnrollmentRepository) Enroll(ctx context.Context, e models.Enrollment) (*models.EnrollmentResult, error) {
	var result *models.EnrollmentResult

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if existing, err := findPayment(ctx, tx, e.SelectionID); err != nil {
			return err
		} else if existing != nil {
			if err := checkReplay(existing, e); err != nil {
				return err
			}
			result = replayed(existing)
			return nil
		}

		var owner string
		var selectedClassID int64
		err := tx.QueryRow(ctx, lockSelectionSQL, e.SelectionID).Scan(&owner, &selectedClassID)
		if errors.Is(err, pgx.ErrNoRows) {
			// A concurrent enrollment may have consumed the entry while we waited for the lock
			existing, findErr := findPayment(ctx, tx, e.SelectionID)
			if findErr != nil {
				return findErr
			}
			if existing != nil {
				if err := checkReplay(existing, e); err != nil {
					return err
				}
				result = replayed(existing)
				return nil
			}
			return apperrors.ErrSelectionNotFound
		}
		if err != nil {
			return storeError("lock selection", err)
		}
		if owner != e.StudentEmail {
			return apperrors.NewForbiddenError("selected class belongs to another student")
		}
		if selectedClassID != e.ClassID {
			return apperrors.NewBadRequestError("class does not match the selected class")
		}

		steps := make([]models.EnrollmentStep, 0, 4)

		var instructorEmail, instructorName, className string
		err = tx.QueryRow(ctx, consumeSeatSQL, e.ClassID).Scan(&instructorEmail, &instructorName, &className)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, classExistsSQL, e.ClassID).Scan(&exists); err != nil {
				return apperrors.NewStepError(models.StepClassSeats, storeError("check class", err))
			}
			if !exists {
				return apperrors.NewStepError(models.StepClassSeats, apperrors.ErrClassNotFound)
			}
			return apperrors.NewStepError(models.StepClassSeats, apperrors.ErrSeatsExhausted)
		}
		if err != nil {
			return apperrors.NewStepError(models.StepClassSeats, storeError("consume seat", err))
		}
		steps = append(steps, models.EnrollmentStep{Step: models.StepClassSeats, Affected: 1})

		if e.InstructorEmail != "" && e.InstructorEmail != instructorEmail {
			logger.Warn().
				Str("claimed", e.InstructorEmail).
				Str("actual", instructorEmail).
				Int64("classID", e.ClassID).
				Msg("Payment confirmation names a different instructor, using the class owner")
		}
		if e.ClassName == "" {
			e.ClassName = className
		}

		tag, err := tx.Exec(ctx, countStudentSQL, instructorEmail, instructorName)
		if err != nil {
			return apperrors.NewStepError(models.StepInstructorStudents, storeError("count student", err))
		}
		steps = append(steps, models.EnrollmentStep{Step: models.StepInstructorStudents, Affected: tag.RowsAffected()})

		payment, err := scanPayment(tx.QueryRow(ctx, insertPaymentSQL,
			e.SelectionID, e.StudentEmail, instructorEmail, e.ClassID, e.ClassName, e.Amount, e.TransactionID))
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "payments_selection_id_key") {
				return errAlreadyRecorded
			}
			return apperrors.NewStepError(models.StepPaymentInsert, storeError("insert payment", err))
		}
		steps = append(steps, models.EnrollmentStep{Step: models.StepPaymentInsert, Affected: 1})

		tag, err = tx.Exec(ctx, deleteSelectionSQL, e.SelectionID)
		if err != nil {
			return apperrors.NewStepError(models.StepSelectionDelete, storeError("delete selection", err))
		}
		steps = append(steps, models.EnrollmentStep{Step: models.StepSelectionDelete, Affected: tag.RowsAffected()})

		result = &models.EnrollmentResult{Payment: payment, Steps: steps}
		return nil
	})

	if errors.Is(err, errAlreadyRecorded) {
		existing, findErr := findPayment(ctx, r.db, e.SelectionID)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, apperrors.NewConflictError("payment was recorded concurrently but could not be read back")
		}
		if err := checkReplay(existing, e); err != nil {
			return nil, err
		}
		return replayed(existing), nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// findPayment returns the payment recorded for a selection, or nil when there is none
func findPayment(ctx context.Context, q db.DBTX, selectionID int64) (*models.PaymentRecord, error) {
	payment, err := scanPayment(q.QueryRow(ctx, findPaymentBySelectionSQL, selectionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find payment", err)
	}
	return payment, nil
}

// checkReplay allows a replay only for the student and class the payment was recorded for
func checkReplay(existing *models.PaymentRecord, e models.Enrollment) error {
	if existing.Email != e.StudentEmail {
		return apperrors.NewForbiddenError("payment belongs to another student")
	}
	if existing.ClassID != e.ClassID {
		return apperrors.NewBadRequestError("class does not match the recorded payment")
	}
	return nil
}

func replayed(payment *models.PaymentRecord) *models.EnrollmentResult {
	return &models.EnrollmentResult{
		Payment:  payment,
		Replayed: true,
		Steps:    []models.EnrollmentStep{},
	}
}
