package models

import (
	"time"
)

// ClassStatus is the admin-controlled publication state of a class
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// ClassOffering defines the class model based on the 'classes' table
type ClassOffering struct {
	ID              int64       `json:"id" db:"id" example:"1"`
	InstructorEmail string      `json:"instructor_email" db:"instructor_email" example:"coach@example.com"`
	InstructorName  string      `json:"instructor_name" db:"instructor_name" example:"Coach Carter"`
	ClassName       string      `json:"class_name" db:"class_name" example:"Morning Yoga"`
	Picture         string      `json:"picture" db:"picture" example:"https://example.com/yoga.jpg"`
	Price           float64     `json:"price" db:"price" example:"19.99"`
	Capacity        int         `json:"capacity" db:"capacity" example:"20"`
	AvailableSeats  int         `json:"available_seats" db:"available_seats" example:"15"`
	TotalEnrolled   int         `json:"totalEnrolled" db:"total_enrolled" example:"5"`
	Status          ClassStatus `json:"status" db:"status" example:"approved"`
	Feedback        *string     `json:"feedback,omitempty" db:"feedback"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// ClassUpdate lists the instructor-editable fields; nil fields are left unchanged.
// Capacity replaces the seat count; available seats follow as capacity minus enrolled.
type ClassUpdate struct {
	ClassName *string
	Picture   *string
	Capacity  *int
	Price     *float64
}

// IsEmpty reports whether the update changes nothing
func (u ClassUpdate) IsEmpty() bool {
	return u.ClassName == nil && u.Picture == nil && u.Capacity == nil && u.Price == nil
}

// ClassFilter narrows a class listing
type ClassFilter struct {
	InstructorEmail string
	Statuses        []ClassStatus
	// OrderByEnrolled sorts by total enrolled, most popular first
	OrderByEnrolled bool
}
