package types

import (
	"time"

	"github.com/google/uuid"
)

// ChapterDiagnosticQuestion links a chapter to a question selected for the
// initial chapter assessment. Diagnostic sets accumulate additively across
// generation calls; there is no replace step.
type ChapterDiagnosticQuestion struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ChapterID uuid.UUID `gorm:"type:uuid;not null;index:idx_diagnostic_chapter" json:"chapter_id"`
	Chapter   *Chapter  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChapterID;references:ID" json:"chapter,omitempty"`

	QuestionID uuid.UUID `gorm:"type:uuid;not null;index:idx_diagnostic_question" json:"question_id"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`

	QuestionOrderNumber int `gorm:"column:question_order_number;not null;default:0" json:"question_order_number"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ChapterDiagnosticQuestion) TableName() string { return "chapter_diagnostic_question" }
