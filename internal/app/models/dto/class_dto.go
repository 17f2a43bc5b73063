package dto

import "github.com/yigit/sportfit/internal/app/models"

// CreateClassRequest is submitted by an instructor; the class starts pending
type CreateClassRequest struct {
	ClassName      string  `json:"class_name" binding:"required,max=255" example:"Morning Yoga"`
	Picture        string  `json:"picture" binding:"omitempty,url" example:"https://example.com/yoga.jpg"`
	InstructorName string  `json:"instructor_name" binding:"max=255" example:"Coach Carter"`
	Price          float64 `json:"price" binding:"required,gt=0" example:"19.99"`
	Seats          int     `json:"available_seats" binding:"required,gte=1" example:"20"`
}

// UpdateClassRequest carries the mutable class fields; absent fields are left unchanged.
// Seats is the new capacity.
type UpdateClassRequest struct {
	ClassName *string  `json:"class_name" binding:"omitempty,min=1,max=255" example:"Evening Yoga"`
	Picture   *string  `json:"picture" binding:"omitempty,url" example:"https://example.com/yoga2.jpg"`
	Seats     *int     `json:"available_seats" binding:"omitempty,gte=1" example:"25"`
	Price     *float64 `json:"price" binding:"omitempty,gt=0" example:"24.99"`
}

// ToModel converts the request into a repository update
func (r UpdateClassRequest) ToModel() models.ClassUpdate {
	return models.ClassUpdate{
		ClassName: r.ClassName,
		Picture:   r.Picture,
		Capacity:  r.Seats,
		Price:     r.Price,
	}
}

// ClassFeedbackRequest carries admin feedback when sent as a body instead of a query
type ClassFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"max=2000" example:"Please add a clearer picture"`
}
