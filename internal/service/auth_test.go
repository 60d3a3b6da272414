package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:       "asha@example.com",
		Password:    "pass1234",
		Name:        "Asha Verma",
		College:     "NIT Patna",
		PhoneNumber: "+919800000000",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.UserID)
	assert.NotEqual(t, "pass1234", created.Password, "password must be stored hashed")

	logged, err := svc.Login(context.Background(), "asha@example.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, logged.UserID)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	users := newFakeUsers(domain.User{ID: 1, UserID: "user-1", Email: "asha@example.com"})
	svc := NewAuthService(users)

	_, err := svc.Signup(context.Background(), domain.User{
		Email:    "asha@example.com",
		Password: "pass1234",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users)

	_, err := svc.Signup(context.Background(), domain.User{
		Email:    "asha@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUsers())

	_, err := svc.Login(context.Background(), "nobody@example.com", "pass1234")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
