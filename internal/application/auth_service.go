package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/pkg/apperr"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
	"github.com/codetrail/bootcamp-api/pkg/mailer"
)

// ResetTokenTTL is how long a password-reset token is honored.
const ResetTokenTTL = 10 * time.Minute

// invalidCredentials is shared by the unknown-email and wrong-password
// paths so the response never signals which one happened.
var invalidCredentials = apperr.Auth("invalid credentials")

// AuthService implements the credential lifecycle: registration, login,
// profile and password updates, and the forgot/reset password flow.
type AuthService struct {
	Users       repository.UserRepository
	JWT         *helpers.JWTManager
	Mail        mailer.Sender
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	ResetURL    string
	MailEnabled bool
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, mail mailer.Sender, pub *helpers.RabbitPublisher, logger *logrus.Logger, resetURL string, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:       users,
		JWT:         jwt,
		Mail:        mail,
		Pub:         pub,
		Logger:      logger,
		ResetURL:    resetURL,
		MailEnabled: mailEnabled,
	}
}

// Register creates a user and treats the registration as an implicit login;
// the handler issues a token from the returned record.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*entity.User, error) {
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, apperr.Validation("role must be user or publisher")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, Password: hash, Role: role}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("email already registered")
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

// Login authenticates email/password. Unknown email and wrong password
// return the identical error to avoid account enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, invalidCredentials
	}
	return u, nil
}

// IssueToken generates the signed bearer token for an authenticated user.
func (s *AuthService) IssueToken(u *entity.User) (string, time.Time, error) {
	return s.JWT.GenerateToken(u.ID.Hex())
}

// GetMe returns the record bound to an already-authenticated identity.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

// UpdateDetails applies a partial name/email update.
func (s *AuthService) UpdateDetails(ctx context.Context, userID, name, email string) (*entity.User, error) {
	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("email already registered")
		}
		return nil, err
	}
	return u, nil
}

// UpdatePassword replaces the stored hash after checking the current
// password; the handler re-issues a token from the returned record.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*entity.User, error) {
	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, currentPassword) {
		return nil, apperr.Auth("password is incorrect")
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ForgotPassword stores the hash of a fresh reset token with a short expiry
// and emails the raw token. A failed send rolls the stored token back before
// the error surfaces, so no unreachable token stays live.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("there is no user with that email")
		}
		return err
	}

	raw, hash, err := helpers.GenerateResetToken()
	if err != nil {
		return err
	}
	u.ResetPasswordToken = hash
	u.ResetPasswordExpire = time.Now().Add(ResetTokenTTL)
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	resetLink := s.ResetURL + "/" + raw
	text := fmt.Sprintf("You are receiving this email because you (or someone else) has requested the reset of a password. Please make a PUT request to:\n\n%s", resetLink)
	if err := s.Mail.Send(ctx, u.Email, "Password reset token", text); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("reset email send failed")
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = time.Time{}
		if rbErr := s.Users.Update(ctx, u); rbErr != nil {
			s.Logger.WithError(rbErr).WithField("email", u.Email).Error("reset token rollback failed")
		}
		return apperr.Delivery("email could not be sent", err)
	}
	return nil
}

// ResetPassword hashes the presented token, looks up a user whose stored
// hash matches with an unexpired window, and replaces the password. Token
// and expiry are cleared in the same save as the password change.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (*entity.User, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Validation("invalid token")
		}
		return nil, err
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = time.Time{}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome to the bootcamp directory",
		Text:    fmt.Sprintf("Hi %s,\n\nYour account was created successfully.", u.Name),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}
