package models

import (
	"time"
)

// Selection is a cart entry: a student's intent to enroll, prior to payment
type Selection struct {
	ID           int64     `json:"id" db:"id" example:"7"`
	StudentEmail string    `json:"studentEmail" db:"student_email" example:"student@example.com"`
	ClassID      int64     `json:"classId" db:"class_id" example:"1"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Populated on listing
	Class *ClassOffering `json:"class,omitempty"`
}

// PaymentRecord is an immutable record of a completed enrollment payment
type PaymentRecord struct {
	ID              int64     `json:"id" db:"id" example:"3"`
	SelectionID     int64     `json:"selectionId" db:"selection_id" example:"7"`
	Email           string    `json:"email" db:"email" example:"student@example.com"`
	InstructorEmail string    `json:"instructor_email" db:"instructor_email" example:"coach@example.com"`
	ClassID         int64     `json:"classId" db:"class_id" example:"1"`
	ClassName       string    `json:"class_name" db:"class_name" example:"Morning Yoga"`
	Amount          float64   `json:"price" db:"amount" example:"19.99"`
	TransactionID   string    `json:"transactionId,omitempty" db:"transaction_id" example:"pi_3Nq..."`
	Date            time.Time `json:"date" db:"date"`
}

// InstructorProfile holds per-instructor statistics
type InstructorProfile struct {
	ID               int64  `json:"id" db:"id" example:"2"`
	Email            string `json:"email" db:"email" example:"coach@example.com"`
	Name             string `json:"name" db:"name" example:"Coach Carter"`
	PhotoURL         string `json:"photoURL,omitempty" db:"photo_url"`
	NumberOfStudents int    `json:"number_of_students" db:"number_of_students" example:"42"`
}

// Enrollment step names, in execution order
const (
	StepClassSeats         = "class_seats"
	StepInstructorStudents = "instructor_students"
	StepPaymentInsert      = "payment_insert"
	StepSelectionDelete    = "selection_delete"
)

// EnrollmentStep is the outcome of one write of an enrollment
type EnrollmentStep struct {
	Step     string `json:"step" example:"class_seats"`
	Affected int64  `json:"affected" example:"1"`
}

// Enrollment describes a confirmed payment to be turned into an enrollment
type Enrollment struct {
	SelectionID     int64
	ClassID         int64
	StudentEmail    string
	InstructorEmail string
	ClassName       string
	Amount          float64
	TransactionID   string
}

// EnrollmentResult is the aggregated outcome of an enrollment.
// Replayed is set when the payment had already been recorded and nothing was written.
type EnrollmentResult struct {
	Payment  *PaymentRecord   `json:"payment"`
	Replayed bool             `json:"replayed"`
	Steps    []EnrollmentStep `json:"steps"`
}
