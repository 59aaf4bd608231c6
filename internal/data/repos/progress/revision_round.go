package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type RevisionRoundRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.RevisionRound) ([]*types.RevisionRound, error)
	GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID, conceptID uuid.UUID) ([]*types.RevisionRound, error)
}

type revisionRoundRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRevisionRoundRepo(db *gorm.DB, baseLog *logger.Logger) RevisionRoundRepo {
	return &revisionRoundRepo{db: db, log: baseLog.With("repo", "RevisionRoundRepo")}
}

func (r *revisionRoundRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.RevisionRound) ([]*types.RevisionRound, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.RevisionRound{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *revisionRoundRepo) GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID, conceptID uuid.UUID) ([]*types.RevisionRound, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.RevisionRound
	if userID == uuid.Nil || conceptID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ? AND concept_id = ?", userID, conceptID).
		Order("round_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
