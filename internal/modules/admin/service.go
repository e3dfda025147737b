package admin

import (
	"errors"
	"time"

	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/pkg/pagination"
	"github.com/textora/core/internal/pkg/response"
	"gorm.io/gorm"
)

const activeUserWindow = 30 * 24 * time.Hour

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfBlock    = errors.New("cannot block yourself")
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers     int64            `json:"totalUsers"`
	ActiveUsers    int64            `json:"activeUsers"`
	TotalRequests  int64            `json:"totalRequests"`
	RequestsByType map[string]int64 `json:"requestsByType"`
}

// Service implements user management and usage reporting.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Stats aggregates user and request counts. Active users are owners with
// at least one ledger entry inside the window.
func (s *Service) Stats() (*Stats, error) {
	stats := &Stats{RequestsByType: map[string]int64{}}

	if err := s.db.Model(&models.UserModel{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.HistoryModel{}).Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}

	since := time.Now().Add(-activeUserWindow)
	err := s.db.Model(&models.HistoryModel{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error
	if err != nil {
		return nil, err
	}

	rows := []struct {
		ActionType string
		Count      int64
	}{}
	err = s.db.Model(&models.HistoryModel{}).
		Select("action_type, COUNT(*) AS count").
		Group("action_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.RequestsByType[row.ActionType] = row.Count
	}

	return stats, nil
}

// Users lists accounts newest first, without credential fields.
func (s *Service) Users(q pagination.Query) ([]models.PublicUser, response.Pagination, error) {
	users := []models.UserModel{}
	query := s.db.Model(&models.UserModel{}).Order("created_at DESC, id DESC")
	page, err := pagination.Paginate(query, q, &users)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, page, nil
}

// ToggleBlock flips the target's blocked flag. Admins cannot block
// themselves.
func (s *Service) ToggleBlock(adminID, targetID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("id = ?", targetID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.ID == adminID {
		return nil, ErrSelfBlock
	}

	user.IsBlocked = !user.IsBlocked
	if err := s.db.Model(&user).Update("is_blocked", user.IsBlocked).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
