package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shopapi/internal/domain"
	"shopapi/internal/repos"
)

var (
	ErrBadCreds       = errors.New("invalid email or password")
	ErrRegisterFailed = errors.New("user registration failed")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Register hashes the password and stores the user. A duplicate email
// surfaces as ErrRegisterFailed; the caller gets no detail beyond
// that, matching the single 400 the API exposes.
func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.Create(name, email, string(hash))
	if err != nil {
		return nil, ErrRegisterFailed
	}
	return u, nil
}

// Login compares the supplied password against the stored hash.
// Unknown email and wrong password are indistinguishable to callers.
func (s *AuthService) Login(email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}
