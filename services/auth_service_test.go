package services

import (
	"errors"
	"testing"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_SignupAndLogin(t *testing.T) {
	testutil.NewDB(t)
	auth := NewAuthService(testSecret)

	resp, err := auth.Signup(dto.SignupRequest{
		Username:  "maker",
		Email:     "maker@example.org",
		Password:  "circular-loops-42",
		Password2: "circular-loops-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "maker", resp.User.Username)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	login, err := auth.Login(dto.LoginRequest{Username: "maker", Password: "circular-loops-42"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_Signup_Duplicates(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "maker", models.RoleUser)
	auth := NewAuthService(testSecret)

	_, err := auth.Signup(dto.SignupRequest{Username: "Maker", Password: "circular-loops-42", Password2: "circular-loops-42"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")

	_, err = auth.Signup(dto.SignupRequest{Username: "other", Email: "maker@example.org", Password: "circular-loops-42", Password2: "circular-loops-42"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		username string
		wantErr  bool
	}{
		{"valid", "circular-loops-42", "maker", false},
		{"too short", "abc12", "maker", true},
		{"entirely numeric", "9876543210", "maker", true},
		{"common", "Password1", "maker", true},
		{"same as username", "makerspace", "makerspace", true},
		{"contains username", "makerspace-2025", "makerspace", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePassword(tt.password, tt.username)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestAuthService_Login_Invalid(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "maker", models.RoleUser)
	auth := NewAuthService(testSecret)

	_, err := auth.Login(dto.LoginRequest{Username: "maker", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(dto.LoginRequest{Username: "nobody", Password: testutil.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(dto.LoginRequest{Username: "maker", Password: testutil.Password})
	assert.NoError(t, err)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "maker", models.RoleUser)

	token, _, err := NewAuthService("one").GenerateToken(*user)
	require.NoError(t, err)

	_, err = NewAuthService("two").ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	testutil.NewDB(t)
	auth := NewAuthService(testSecret)

	admin, err := auth.CreateAdmin("root", "root@example.org", "x")
	require.NoError(t, err)
	assert.True(t, admin.IsStaff())

	_, err = auth.CreateAdmin("root", "", "y")
	assert.Error(t, err)
}
