package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/pkg/mail"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// Service implements account management on top of the users table.
type Service struct {
	db     *gorm.DB
	mailer *mail.Sender
	appURL string
	logger *zap.Logger
}

func NewService(db *gorm.DB, mailer *mail.Sender, appURL string, logger *zap.Logger) *Service {
	return &Service{db: db, mailer: mailer, appURL: appURL, logger: logger}
}

// Register creates a new account with the default user role.
func (s *Service) Register(dto RegisterDTO) (*models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Name:     strings.TrimSpace(dto.Name),
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// the unique index catches the lost race on concurrent signups
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and, when requiredRole is set, that the
// stored role matches the entry point the client asked for.
func (s *Service) Login(dto LoginDTO) (*models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var user models.UserModel
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, errWrongPassword
	}
	if user.IsBlocked {
		return nil, errAccountBlocked
	}
	if dto.RequiredRole != "" && dto.RequiredRole != user.Role {
		return nil, errRoleMismatch
	}
	return &user, nil
}

// ForgotPassword stores a hashed single-use reset token and mails the raw
// token to the account holder. Unknown emails are silently ignored so the
// endpoint does not leak which accounts exist.
func (s *Service) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.UserModel
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTokenTTL)

	err = s.db.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":   hashToken(token),
		"reset_password_expires": expires,
	}).Error
	if err != nil {
		return err
	}

	// mail delivery is best-effort; the generic response already went out
	go func() {
		resetURL := fmt.Sprintf("%s/reset-password/%s", s.appURL, token)
		if err := s.mailer.SendPasswordReset(user.Email, mail.PasswordResetData{
			Name:     user.Name,
			ResetURL: resetURL,
		}); err != nil {
			s.logger.Warn("password reset mail failed", zap.Error(err))
		}
	}()
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *Service) ResetPassword(token, password string) error {
	var user models.UserModel
	err := s.db.Where("reset_password_token = ? AND reset_password_expires > ?", hashToken(token), time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errInvalidResetLink
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password":               string(hash),
		"reset_password_token":   "",
		"reset_password_expires": nil,
	}).Error
}

// Me loads the current user.
func (s *Service) Me(userID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
