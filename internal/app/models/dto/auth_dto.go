package dto

// TokenRequest asks for an access token for a registered user
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@example.com"`
	Name     string `json:"name" example:"Jane Doe"`
	Password string `json:"password" example:"s3cret-pass"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Bearer"`
	ExpiresIn int64  `json:"expiresIn" example:"3600"`
}

// CreateUserRequest registers a user. Password is optional; accounts created through a
// social sign-in front end have none.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@example.com"`
	Name     string `json:"name" binding:"max=255" example:"Jane Doe"`
	PhotoURL string `json:"photoURL" binding:"omitempty,url" example:"https://example.com/jane.jpg"`
	Password string `json:"password" binding:"omitempty,min=8,max=72" example:"s3cret-pass"`
}

// CreateUserResponse describes the outcome of a registration
type CreateUserResponse struct {
	ID      int64  `json:"insertedId" example:"1"`
	Email   string `json:"email" example:"student@example.com"`
	Created bool   `json:"created" example:"true"`
}

// AdminCheckResponse answers whether the caller is an admin
type AdminCheckResponse struct {
	Admin bool `json:"admin" example:"false"`
}

// InstructorCheckResponse answers whether the caller is an instructor
type InstructorCheckResponse struct {
	Instructor bool `json:"instructor" example:"true"`
}
