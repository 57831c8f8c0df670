package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrAdminDisabled      = errors.New("admin login disabled")
)

// AuthService checks the admin dashboard password. An empty password disables admin login.
type AuthService struct {
	hash []byte
}

func NewAuthService(password string) (*AuthService, error) {
	if password == "" {
		return &AuthService{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &AuthService{hash: hash}, nil
}

func (s *AuthService) Enabled() bool {
	return len(s.hash) > 0
}

func (s *AuthService) Authenticate(password string) error {
	if !s.Enabled() {
		return ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
