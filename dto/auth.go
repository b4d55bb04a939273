package dto

import (
	"time"

	"github.com/callsoso/callsoso/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SignupRequest represents registration data
type SignupRequest struct {
	Username  string `json:"username" form:"username" binding:"required,max=150"`
	Email     string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	Password  string `json:"password" form:"password1" binding:"required"`
	Password2 string `json:"password2" form:"password2" binding:"required,eqfield=Password"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AuthResponse is returned after a successful login or signup
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
