package dto

// CreateSelectionRequest adds a class to the caller's cart
type CreateSelectionRequest struct {
	ClassID int64 `json:"classId" binding:"required,gt=0" example:"1"`
}

// CreateIntentRequest asks for a payment intent for a decimal price
type CreateIntentRequest struct {
	Price   float64 `json:"price" binding:"required,gt=0" example:"19.99"`
	ClassID int64   `json:"classId" binding:"omitempty,gt=0" example:"1"`
}

// CreateIntentResponse carries the processor's client secret
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret" example:"pi_3Nq_secret_abc"`
	Amount       int64  `json:"amount" example:"1999"`
	Currency     string `json:"currency" example:"usd"`
	Provider     string `json:"provider" example:"stripe"`
}

// PaymentConfirmationRequest reports a payment the processor confirmed.
// ID is the cart entry (selection) id and doubles as the idempotency key.
type PaymentConfirmationRequest struct {
	ID              int64   `json:"id" binding:"required,gt=0" example:"7"`
	ClassID         int64   `json:"classId" binding:"omitempty,gt=0" example:"1"`
	InstructorEmail string  `json:"instructor_email" binding:"required,email" example:"coach@example.com"`
	Email           string  `json:"email" binding:"omitempty,email" example:"student@example.com"`
	ClassName       string  `json:"class_name" binding:"max=255" example:"Morning Yoga"`
	Price           float64 `json:"price" binding:"required,gt=0" example:"19.99"`
	TransactionID   string  `json:"transactionId" binding:"max=255" example:"pi_3Nq..."`
}
