package api

import (
	"net/http"

	"github.com/o6b7/travelbond/internal/cli/logger"
)

// Login exchanges email and password for a token
func Login(email, password string) (*AuthResponse, error) {
	logger.Debug("Logging in", "email", email)

	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := send(http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user the saved token belongs to
func Me() (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := send(http.MethodGet, "/api/v1/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
