package models

import "time"

// OptionModel is a generic key-value store for singleton app state.
type OptionModel struct {
	ID        uint      `json:"id"    gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"  gorm:"uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"type:longtext"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (OptionModel) TableName() string { return "options" }
