package history

import (
	"errors"

	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/pkg/pagination"
	"github.com/textora/core/internal/pkg/response"
	"gorm.io/gorm"
)

// MaxEntriesPerUser caps the ledger; appending past the cap evicts the
// oldest rows for that owner.
const MaxEntriesPerUser = 100

var ErrEntryNotFound = errors.New("history entry not found")

// evictSQL keeps only the newest rows for one owner in a single statement,
// so concurrent appends cannot interleave a count with a delete. The inner
// derived table works around MySQL's ban on selecting from the target of
// a DELETE.
const evictSQL = `DELETE FROM histories WHERE user_id = ? AND id NOT IN (
	SELECT id FROM (
		SELECT id FROM histories WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	) AS keep_rows)`

// Service owns the capped per-user action ledger.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Append records a completed operation and enforces the per-user cap.
func (s *Service) Append(userID, actionType, inputText, outputText string, metadata map[string]interface{}) error {
	entry := models.HistoryModel{
		UserID:     userID,
		ActionType: actionType,
		InputText:  inputText,
		OutputText: outputText,
		Metadata:   metadata,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return err
	}
	return s.db.Exec(evictSQL, userID, userID, MaxEntriesPerUser).Error
}

// List returns the owner's entries newest first.
func (s *Service) List(userID string, q pagination.Query) ([]models.HistoryModel, response.Pagination, error) {
	entries := []models.HistoryModel{}
	query := s.db.Model(&models.HistoryModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	page, err := pagination.Paginate(query, q, &entries)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return entries, page, nil
}

// Delete removes a single owner-scoped entry.
func (s *Service) Delete(userID, entryID string) error {
	res := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.HistoryModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Clear deletes all entries for the owner. Clearing an empty ledger is not
// an error.
func (s *Service) Clear(userID string) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.HistoryModel{}).Error
}
