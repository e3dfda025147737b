package settings

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/textora/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsKey is the fixed row name in the options table. The unique index
// on options.name is what keeps the record a singleton.
const settingsKey = "app_settings"

// AppSettings are the admin-controlled feature flags.
type AppSettings struct {
	GrammarEnabled     bool `json:"grammarEnabled"`
	TranslationEnabled bool `json:"translationEnabled"`
	HumanizeEnabled    bool `json:"humanizeEnabled"`
	PlagiarismEnabled  bool `json:"plagiarismEnabled"`
}

// UpdateDTO is a partial flag update; absent fields are left untouched.
type UpdateDTO struct {
	GrammarEnabled     *bool `json:"grammarEnabled"`
	TranslationEnabled *bool `json:"translationEnabled"`
	HumanizeEnabled    *bool `json:"humanizeEnabled"`
	PlagiarismEnabled  *bool `json:"plagiarismEnabled"`
}

// Empty reports whether the update carries no recognized field.
func (d UpdateDTO) Empty() bool {
	return d.GrammarEnabled == nil && d.TranslationEnabled == nil &&
		d.HumanizeEnabled == nil && d.PlagiarismEnabled == nil
}

func defaultSettings() AppSettings {
	return AppSettings{
		GrammarEnabled:     true,
		TranslationEnabled: true,
		HumanizeEnabled:    true,
		PlagiarismEnabled:  true,
	}
}

// Service manages the persisted flag record behind an in-memory cache.
type Service struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache *AppSettings
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the current settings, creating the default record on first use.
func (s *Service) Get() (AppSettings, error) {
	s.mu.RLock()
	if s.cache != nil {
		defer s.mu.RUnlock()
		return *s.cache, nil
	}
	s.mu.RUnlock()

	return s.load()
}

func (s *Service) load() (AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var opt models.OptionModel
	err := s.db.Where("name = ?", settingsKey).First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := defaultSettings()
		if err := s.persist(defaults); err != nil {
			return AppSettings{}, err
		}
		s.cache = &defaults
		return defaults, nil
	}
	if err != nil {
		return AppSettings{}, err
	}

	settings := defaultSettings()
	if err := json.Unmarshal([]byte(opt.Value), &settings); err != nil {
		return AppSettings{}, err
	}
	s.cache = &settings
	return settings, nil
}

// Update applies a partial update and persists the result. Last write wins.
func (s *Service) Update(dto UpdateDTO) (AppSettings, error) {
	current, err := s.Get()
	if err != nil {
		return AppSettings{}, err
	}

	if dto.GrammarEnabled != nil {
		current.GrammarEnabled = *dto.GrammarEnabled
	}
	if dto.TranslationEnabled != nil {
		current.TranslationEnabled = *dto.TranslationEnabled
	}
	if dto.HumanizeEnabled != nil {
		current.HumanizeEnabled = *dto.HumanizeEnabled
	}
	if dto.PlagiarismEnabled != nil {
		current.PlagiarismEnabled = *dto.PlagiarismEnabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(current); err != nil {
		return AppSettings{}, err
	}
	s.cache = &current
	return current, nil
}

func (s *Service) persist(settings AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	opt := models.OptionModel{Name: settingsKey, Value: string(data)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&opt).Error
}
