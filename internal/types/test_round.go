package types

import (
	"time"

	"github.com/google/uuid"
)

type TestRound struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_test_round_user_concept,priority:1" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	ConceptID uuid.UUID `gorm:"type:uuid;not null;index:idx_test_round_user_concept,priority:2" json:"concept_id"`
	Concept   *Concept  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConceptID;references:ID" json:"concept,omitempty"`

	RoundNumber int     `gorm:"column:round_number;not null;default:1" json:"round_number"`
	Status      string  `gorm:"column:status;not null" json:"status"`
	Score       float64 `gorm:"column:score;not null;default:0" json:"score"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TestRound) TableName() string { return "test_round" }
