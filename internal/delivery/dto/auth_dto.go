package dto

import "time"

// Request DTOs

type RegisterRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=40"`
	LastName    string `json:"last_name" validate:"required,max=40"`
	Username    string `json:"username" validate:"required,min=3,max=40"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	City        string `json:"city" validate:"required,max=80"`
	State       string `json:"state" validate:"required,max=40"`
	Country     string `json:"country" validate:"required,max=40"`
	Timezone    string `json:"timezone" validate:"omitempty,timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"date_of_birth"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Timezone    string    `json:"timezone"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
