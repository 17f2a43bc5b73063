package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/db"
)

var paymentColumns = []string{
	"id", "selection_id", "email", "instructor_email", "class_id", "class_name", "amount", "transaction_id", "date",
}

// PaymentRepository reads payment records. Records are only written by EnrollmentRepository.
type PaymentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(conn db.DBTX) *PaymentRepository {
	return &PaymentRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func scanPayment(row rowScanner) (*models.PaymentRecord, error) {
	p := &models.PaymentRecord{}
	err := row.Scan(&p.ID, &p.SelectionID, &p.Email, &p.InstructorEmail, &p.ClassID,
		&p.ClassName, &p.Amount, &p.TransactionID, &p.Date)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByEmail returns the student's payments. newestFirst orders by date descending,
// otherwise by insertion order.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string, newestFirst bool) ([]*models.PaymentRecord, error) {
	q := r.sb.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"email": email})
	if newestFirst {
		q = q.OrderBy("date DESC", "id DESC")
	} else {
		q = q.OrderBy("id ASC")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list payments", err)
	}
	payments, err := collect(rows, scanPayment)
	if err != nil {
		return nil, storeError("scan payments", err)
	}
	return payments, nil
}
