package models

// FeedbackModel is a message submitted through the public feedback form.
type FeedbackModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Message string `json:"message" gorm:"type:text;not null"`
}

func (FeedbackModel) TableName() string { return "feedbacks" }
