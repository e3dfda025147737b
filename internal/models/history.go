package models

// Action types recorded in the history ledger.
const (
	ActionGrammar    = "grammar"
	ActionTranslate  = "translate"
	ActionHumanize   = "humanize"
	ActionPlagiarism = "plagiarism"
)

// HistoryModel is one recorded AI operation. Rows are hard-deleted: the
// per-user cap and the clear endpoint must actually remove data.
type HistoryModel struct {
	Base
	UserID     string                 `json:"userId"     gorm:"type:char(36);index:idx_histories_user;not null"`
	ActionType string                 `json:"actionType" gorm:"index;not null"`
	InputText  string                 `json:"inputText"  gorm:"type:text;not null"`
	OutputText string                 `json:"outputText" gorm:"type:text;not null"`
	Metadata   map[string]interface{} `json:"metaData"   gorm:"type:longtext;serializer:json"`
}

func (HistoryModel) TableName() string { return "histories" }
