package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Every ingested question lands in needs_verification until an admin reviews it.
const QuestionStatusNeedsVerification = "needs_verification"

type Question struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// ConceptID is nullable: an extracted question whose concept name does not
	// match any concept of the chapter is kept as an orphan, not rejected.
	ConceptID *uuid.UUID `gorm:"type:uuid;index:idx_question_concept" json:"concept_id,omitempty"`
	Concept   *Concept   `gorm:"constraint:OnDelete:SET NULL;foreignKey:ConceptID;references:ID" json:"concept,omitempty"`

	Type           string         `gorm:"column:type;not null" json:"type"`
	QuestionStream datatypes.JSON `gorm:"column:question_stream;type:jsonb" json:"question_stream"`
	Options        datatypes.JSON `gorm:"column:options;type:jsonb" json:"options"`
	CorrectOption  string         `gorm:"column:correct_option" json:"correct_option"`
	Difficulty     string         `gorm:"column:difficulty" json:"difficulty"`
	Hint           string         `gorm:"column:hint" json:"hint"`
	FinalAnswer    string         `gorm:"column:final_answer" json:"final_answer"`
	AnswerStream   datatypes.JSON `gorm:"column:answer_stream;type:jsonb" json:"answer_stream"`
	Status         string         `gorm:"column:status;not null" json:"status"`
	IsInvented     bool           `gorm:"column:is_invented;not null;default:false" json:"is_invented"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }
