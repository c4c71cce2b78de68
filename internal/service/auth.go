package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongCredentials = errors.New("wrong username or password")

// AuthService checks the single admin credential pair from the application
// config. The password is hashed once at construction so login compares
// against a bcrypt digest.
type AuthService struct {
	username     string
	passwordHash []byte
}

func NewAuthService(username, password string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return &AuthService{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (s *AuthService) Login(username, password string) error {
	if username != s.username {
		return ErrWrongCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return ErrWrongCredentials
	}

	return nil
}
