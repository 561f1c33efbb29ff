package core

import "time"

type User struct {
	ID           uint64    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique;not null"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SignupRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=150"`
	Email          string `json:"email" binding:"omitempty,email"`
	FirstName      string `json:"first_name" binding:"max=150"`
	LastName       string `json:"last_name" binding:"max=150"`
	Password       string `json:"password" binding:"required,min=8"`
	PasswordRepeat string `json:"password_repeat" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type LoginResponse struct {
	User       User   `json:"user"`
	SessionKey string `json:"session_key"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
