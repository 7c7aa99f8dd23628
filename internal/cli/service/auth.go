package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/client"
	"github.com/o6b7/travelbond/internal/cli/config"
	"github.com/o6b7/travelbond/internal/cli/logger"
	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

var errNotLoggedIn = errors.New("not logged in: run `travelbond auth login` first")

// AuthService backs the auth commands and keeps the token in the config file
type AuthService struct {
	prompt *prompter.Prompter
}

func NewAuthService(p *prompter.Prompter) *AuthService {
	return &AuthService{prompt: p}
}

// Login prompts for any missing credentials and saves the issued token
func (s *AuthService) Login(email string) error {
	var err error
	if email == "" {
		email, err = s.prompt.String("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := s.prompt.Password("Password: ")
	if err != nil {
		return err
	}

	resp, err := api.Login(email, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("invalid email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := config.SetString("auth.token", resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := config.SetString("auth.expires_at", resp.ExpiresAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if resp.User != nil {
		if err := config.SetString("auth.username", resp.User.Username); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
	}
	client.SetAuthToken(resp.Token)

	logger.Info("Logged in", "email", email)
	output.PrintSuccess("Logged in as %s", displayName(resp.User))
	return nil
}

// Logout forgets the saved token
func (s *AuthService) Logout() error {
	for _, key := range []string{"auth.token", "auth.expires_at", "auth.username"} {
		if err := config.SetString(key, ""); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
	}
	client.ClearAuthToken()
	output.PrintSuccess("Logged out")
	return nil
}

// WhoAmI prints the account the saved token belongs to
func (s *AuthService) WhoAmI() error {
	if config.GetString("auth.token") == "" {
		return errNotLoggedIn
	}

	user, err := api.Me()
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("saved token is invalid or expired: run `travelbond auth login`")
		}
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	out := s.prompt.Out()
	if output.GetFormat() == output.FormatJSON {
		return output.JSON(out, map[string]interface{}{"user": user})
	}

	output.Heading(out, "%s", displayName(user))
	output.Field(out, "Email", user.Email)
	output.Field(out, "Location", user.Location)
	if user.IsAdmin {
		output.Field(out, "Role", "admin")
	}
	return nil
}
