package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long a session token stays valid.
const TokenTTL = 24 * time.Hour

const minPasswordLength = 8

var commonPasswords = map[string]bool{
	"password": true, "password1": true, "12345678": true, "123456789": true,
	"qwertyui": true, "qwerty123": true, "iloveyou": true, "sunshine": true,
	"letmein1": true, "football": true, "baseball": true, "welcome1": true,
	"admin123": true, "abc12345": true, "passw0rd": true, "11111111": true,
}

// AuthService handles accounts and session tokens
type AuthService struct {
	users  *repositories.UserRepository
	secret []byte
}

// NewAuthService creates a new auth service signing tokens with secret
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		users:  repositories.NewUserRepository(),
		secret: []byte(secret),
	}
}

// Signup creates a new user account and logs it in
func (s *AuthService) Signup(req dto.SignupRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	// Check if username exists
	taken, err := s.users.UsernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fieldError("username", "A user with that username already exists.")
	}

	// Check if email already exists
	if email != "" {
		taken, err = s.users.EmailTaken(email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fieldError("email", "A user with that email already exists.")
		}
	}

	if msg := validatePassword(req.Password, username); msg != "" {
		return nil, fieldError("password2", msg)
	}

	user, err := s.createUser(username, email, req.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(*user)
}

// CreateAdmin creates a staff account, bypassing the password rules
func (s *AuthService) CreateAdmin(username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	taken, err := s.users.UsernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("user %q already exists", username)
	}
	return s.createUser(username, email, password, models.RoleAdmin)
}

func (s *AuthService) createUser(username, email, password string, role models.Role) (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, fieldError("username", "A user with that username already exists.")
		}
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) issue(user models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken generates a new JWT token for a user
func (s *AuthService) GenerateToken(user models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL)

	claims := dto.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// validatePassword applies the account password rules and returns the
// first violated rule's message.
func validatePassword(password, username string) string {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength)
	}
	if commonPasswords[strings.ToLower(password)] {
		return "This password is too common."
	}
	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return "This password is entirely numeric."
	}
	lower, user := strings.ToLower(password), strings.ToLower(username)
	if user != "" && (lower == user || strings.Contains(lower, user) || strings.Contains(user, lower)) {
		return "The password is too similar to the username."
	}
	return ""
}
