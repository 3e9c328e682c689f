package dto

import (
	"time"

	"careerlink/internal/domain/user"

	"github.com/google/uuid"
)

// AuthUserResponse is the account summary returned with a session token.
type AuthUserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	IsApproved bool      `json:"isApproved"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  AuthUserResponse `json:"user"`
}

func NewAuthResponse(u user.User, token string) AuthResponse {
	return AuthResponse{
		Token: token,
		User:  AuthUserResponse{ID: u.ID, Email: u.Email, Role: u.Role, IsApproved: u.IsApproved},
	}
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	IsActive   bool      `json:"isActive"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
