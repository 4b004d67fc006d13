package usecase

import (
	"context"
	"fmt"
	"strings"

	"marketplace_client/internal/clients"
	"marketplace_client/internal/domain"
	"marketplace_client/internal/session"

	"github.com/sirupsen/logrus"
)

// authUseCase implements the domain.AuthUseCase interface. It talks to the
// unauthenticated auth endpoints and owns persisting the resulting token
// into the session store.
type authUseCase struct {
	api      *clients.APIClient
	sessions session.Store
	log      *logrus.Logger
}

// NewAuthUseCase creates a new instance of authUseCase. api must be a
// client without a token source; login and register never send credentials
// they are trying to obtain.
func NewAuthUseCase(api *clients.APIClient, sessions session.Store, logger *logrus.Logger) domain.AuthUseCase {
	return &authUseCase{
		api:      api,
		sessions: sessions,
		log:      logger,
	}
}

// Login validates the fields locally, exchanges them for a session, and
// persists the returned token.
func (uc *authUseCase) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting login for email: %s", email)

	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Login failed - invalid email format: %s", email)
		return nil, domain.NewValidationError("invalid email format")
	}
	if len(password) < minPasswordLength {
		uc.log.Warn("Use Case: Login failed - password too short")
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}

	body := map[string]string{"email": email, "password": password}
	var auth domain.AuthSession
	if err := uc.api.Post(ctx, "/auth/login", body, &auth); err != nil {
		uc.log.Warnf("Use Case: Login request failed for %s: %v", email, err)
		return nil, err
	}

	uc.persistToken(auth.Token)
	uc.log.Infof("Use Case: Login successful for user ID: %s", auth.User.ID)
	return &auth, nil
}

// Register validates all registration fields locally before any network
// call, then creates the account and persists the returned token.
func (uc *authUseCase) Register(ctx context.Context, data domain.RegisterData) (*domain.AuthSession, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	uc.log.Infof("Use Case: Attempting registration for email: %s", data.Email)

	if err := validateRegisterData(data); err != nil {
		uc.log.Warnf("Use Case: Registration failed - %v", err)
		return nil, err
	}

	var auth domain.AuthSession
	if err := uc.api.Post(ctx, "/auth/register", data, &auth); err != nil {
		uc.log.Warnf("Use Case: Registration request failed for %s: %v", data.Email, err)
		return nil, err
	}

	uc.persistToken(auth.Token)
	uc.log.Infof("Use Case: Registration successful. User ID: %s", auth.User.ID)
	return &auth, nil
}

// Logout clears the stored token. Storage failures are swallowed: the
// worst case is a token file that the next Set overwrites anyway.
func (uc *authUseCase) Logout() {
	if err := uc.sessions.Clear(); err != nil {
		uc.log.Warnf("Use Case: Failed to clear session token (continuing): %v", err)
		return
	}
	uc.log.Info("Use Case: Logged out")
}

// persistToken stores the token, tolerating failure. A token that was not
// persisted just means the user is logged out again on the next launch.
func (uc *authUseCase) persistToken(token string) {
	if err := uc.sessions.Set(token); err != nil {
		uc.log.Errorf("Use Case: Failed to persist session token: %v", err)
	}
}

func validateRegisterData(data domain.RegisterData) error {
	if len(data.Name) < minNameLength {
		return domain.NewValidationError(fmt.Sprintf("name must be at least %d characters long", minNameLength))
	}
	if len(data.Phone) < minPhoneLength {
		return domain.NewValidationError(fmt.Sprintf("phone must be at least %d digits long", minPhoneLength))
	}
	if !isValidEmail(data.Email) {
		return domain.NewValidationError("invalid email format")
	}
	if len(data.Password) < minPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	if data.Password != data.ConfirmPassword {
		return domain.NewValidationError("passwords do not match")
	}
	return nil
}
