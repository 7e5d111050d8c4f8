package models

import "time"

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	Profession   string    `json:"profession"`
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the request body for self-registration.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Gender     string `json:"gender" validate:"max=10"`
	Age        int    `json:"age" validate:"gte=0,lte=150"`
	Profession string `json:"profession" validate:"max=50"`
	Phone      string `json:"phone" validate:"max=20"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse identifies the authenticated user.
type AuthResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Token    string `json:"token"`
}

// UserRequest is the admin request body for creating or replacing a user.
// Password is optional on update.
type UserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"omitempty,min=6,max=72"`
	Gender     string `json:"gender" validate:"max=10"`
	Age        int    `json:"age" validate:"gte=0,lte=150"`
	Profession string `json:"profession" validate:"max=50"`
	Phone      string `json:"phone" validate:"max=20"`
	Admin      bool   `json:"admin"`
}

// UserListParams holds query parameters for the admin user listing.
type UserListParams struct {
	Page     int
	PageSize int
	Username string
	Phone    string
}

// Validate sets defaults for paging.
func (p *UserListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 10
	}
}

// UserPage is a page of users.
type UserPage struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	TotalPages   int    `json:"totalPages"`
	TotalResults int    `json:"totalResults"`
	Data         []User `json:"data"`
}
