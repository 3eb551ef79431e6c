package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	Username string `json:"username"`
}

type Credentials struct {
	Username string `json:"username" form:"username" validate:"required,lte=64"`
	Password string `json:"password" form:"password" validate:"required"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %v", err)
	}
	return string(hashed), nil
}

func ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("error comparing password: %v", err)
	}
	return nil
}
