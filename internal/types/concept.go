package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Concept is a named sub-topic within a chapter, used to classify questions.
// The full concept set for a chapter is replaced (never merged) on each
// re-extraction of the chapter's question bank.
type Concept struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ChapterID uuid.UUID `gorm:"type:uuid;not null;index:idx_concept_chapter" json:"chapter_id"`
	Chapter   *Chapter  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChapterID;references:ID" json:"chapter,omitempty"`

	Name               string  `gorm:"column:name;not null" json:"name"`
	ConceptOrderNumber int     `gorm:"column:concept_order_number;not null;default:0" json:"concept_order_number"`
	Weightage          float64 `gorm:"column:weightage;not null;default:0" json:"weightage"`
	IsActive           bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Concept) TableName() string { return "concept" }
