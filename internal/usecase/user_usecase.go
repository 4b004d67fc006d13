package usecase

import (
	"context"
	"fmt"
	"strings"

	"marketplace_client/internal/clients"
	"marketplace_client/internal/domain"

	"github.com/sirupsen/logrus"
)

// userUseCase implements the domain.UserUseCase interface over the
// authenticated profile endpoints.
type userUseCase struct {
	api *clients.APIClient
	log *logrus.Logger
}

// NewUserUseCase creates a new instance of userUseCase. api must carry a
// token source; without a stored token the server rejects every call.
func NewUserUseCase(api *clients.APIClient, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{
		api: api,
		log: logger,
	}
}

func (uc *userUseCase) GetProfile(ctx context.Context) (*domain.User, error) {
	uc.log.Info("Use Case: Fetching user profile")

	var user domain.User
	if err := uc.api.Get(ctx, "/user/profile", nil, &user); err != nil {
		uc.log.Warnf("Use Case: Failed to fetch profile: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Profile retrieved for user ID: %s", user.ID)
	return &user, nil
}

// UpdateProfile applies the registration field rules (minus password) and
// sends the full editable field set; partial-update semantics are the
// server's business.
func (uc *userUseCase) UpdateProfile(ctx context.Context, data domain.UpdateProfileData) (*domain.User, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	uc.log.Infof("Use Case: Updating profile for email: %s", data.Email)

	if len(data.Name) < minNameLength {
		uc.log.Warn("Use Case: Profile update failed - name too short")
		return nil, domain.NewValidationError(fmt.Sprintf("name must be at least %d characters long", minNameLength))
	}
	if len(data.Phone) < minPhoneLength {
		uc.log.Warn("Use Case: Profile update failed - phone too short")
		return nil, domain.NewValidationError(fmt.Sprintf("phone must be at least %d digits long", minPhoneLength))
	}
	if !isValidEmail(data.Email) {
		uc.log.Warnf("Use Case: Profile update failed - invalid email format: %s", data.Email)
		return nil, domain.NewValidationError("invalid email format")
	}

	var user domain.User
	if err := uc.api.Put(ctx, "/user/profile", data, &user); err != nil {
		uc.log.Warnf("Use Case: Profile update request failed: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Profile updated for user ID: %s", user.ID)
	return &user, nil
}

func (uc *userUseCase) UpdatePassword(ctx context.Context, data domain.UpdatePasswordData) error {
	uc.log.Info("Use Case: Updating password")

	if data.CurrentPassword == "" {
		uc.log.Warn("Use Case: Password update failed - current password empty")
		return domain.NewValidationError("current password is required")
	}
	if len(data.NewPassword) < minPasswordLength {
		uc.log.Warn("Use Case: Password update failed - new password too short")
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	if data.NewPassword != data.ConfirmPassword {
		uc.log.Warn("Use Case: Password update failed - passwords do not match")
		return domain.NewValidationError("passwords do not match")
	}

	if err := uc.api.Put(ctx, "/user/password", data, nil); err != nil {
		uc.log.Warnf("Use Case: Password update request failed: %v", err)
		return err
	}

	uc.log.Info("Use Case: Password updated successfully")
	return nil
}
