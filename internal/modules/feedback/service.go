package feedback

import (
	"strings"

	"github.com/textora/core/internal/models"
	"gorm.io/gorm"
)

// Service stores and lists feedback submissions.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit stores a feedback message.
func (s *Service) Submit(name, email, message string) (*models.FeedbackModel, error) {
	entry := models.FeedbackModel{
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Message: strings.TrimSpace(message),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all feedback newest first.
func (s *Service) List() ([]models.FeedbackModel, error) {
	entries := []models.FeedbackModel{}
	err := s.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
