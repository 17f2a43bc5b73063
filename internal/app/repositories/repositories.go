package repositories

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/sportfit/internal/db"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/dberrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	ClassRepository      *ClassRepository
	SelectionRepository  *SelectionRepository
	PaymentRepository    *PaymentRepository
	InstructorRepository *InstructorRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(pool),
		ClassRepository:      NewClassRepository(pool),
		SelectionRepository:  NewSelectionRepository(pool),
		PaymentRepository:    NewPaymentRepository(pool),
		InstructorRepository: NewInstructorRepository(pool),
		EnrollmentRepository: NewEnrollmentRepository(pool),
	}
}

// statementBuilder is the squirrel builder every repository uses
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// storeError classifies a driver error: connection failures become ErrUnavailable,
// everything else is wrapped with the operation name.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if dberrors.IsConnectionError(err) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFoundOr maps pgx.ErrNoRows to notFound and classifies the rest
func notFoundOr(op string, err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return storeError(op, err)
}

// collect scans every row with scan and closes rows
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
