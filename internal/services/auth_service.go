package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/cache"
	"github.com/usof-platform/usof-backend/internal/config"
	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/email"
	"github.com/usof-platform/usof-backend/internal/logging"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

const defaultProfilePicture = "/uploads/avatars/default.png"

type AuthService struct {
	db     *gorm.DB
	mailer *email.Mailer
	log    *zap.Logger
}

func NewAuthService() *AuthService {
	return &AuthService{
		db:     database.GetDB(),
		mailer: email.NewMailer(config.AppConfig.SMTP),
		log:    logging.GetLogger(),
	}
}

// Register creates an unverified account and mails a confirmation link.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	if req.Password != req.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	if !utils.IsValidLogin(req.Login) {
		return nil, errors.New("invalid login format")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, errors.New("password must be 8-64 characters with at least one letter and one number")
	}

	var existing models.User
	if err := s.db.Where("login = ? OR email = ?", req.Login, req.Email).First(&existing).Error; err == nil {
		return nil, ErrLoginOrEmailTaken
	}

	user := &models.User{
		Login:          req.Login,
		FullName:       req.FullName,
		Email:          req.Email,
		EmailVerified:  false,
		ProfilePicture: defaultProfilePicture,
		Role:           models.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateVerificationToken(user.ID)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/api/auth/verify-email/%s", config.AppConfig.Server.BaseURL, token)
	if err := s.mailer.SendVerificationEmail(user.Email, link); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail marks the account named by the confirmation token as verified.
func (s *AuthService) VerifyEmail(token string) error {
	userID, err := utils.ParseVerificationToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Model(&user).Update("email_verified", true).Error
}

// Login authenticates by login+password; unverified accounts are rejected
// without revealing which check failed.
func (s *AuthService) Login(req *models.LoginRequest) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("login = ?", req.Login).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, "", ErrInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Login, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Logout revokes the presented session token.
func (s *AuthService) Logout(token string) error {
	return cache.Blacklist.Add(token)
}

// SendPasswordReset mails a reset link for the given address. No account
// lookup happens here; the token is only usable by a registered email.
func (s *AuthService) SendPasswordReset(emailAddr string) error {
	token, err := utils.GenerateResetToken(emailAddr)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/auth/password-reset/%s", config.AppConfig.Server.BaseURL, token)
	return s.mailer.SendPasswordResetEmail(emailAddr, link)
}

// ConfirmPasswordReset sets a new password for the account named by the
// reset token.
func (s *AuthService) ConfirmPasswordReset(token, newPassword string) error {
	emailAddr, err := utils.ParseResetToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	if !utils.IsValidPassword(newPassword) {
		return errors.New("password must be 8-64 characters with at least one letter and one number")
	}

	var user models.User
	if err := s.db.Where("email = ?", emailAddr).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	return s.db.Model(&user).Update("password", user.Password).Error
}
