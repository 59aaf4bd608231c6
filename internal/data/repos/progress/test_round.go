package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type TestRoundRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TestRound) ([]*types.TestRound, error)
	GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID, conceptID uuid.UUID) ([]*types.TestRound, error)
}

type testRoundRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestRoundRepo(db *gorm.DB, baseLog *logger.Logger) TestRoundRepo {
	return &testRoundRepo{db: db, log: baseLog.With("repo", "TestRoundRepo")}
}

func (r *testRoundRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TestRound) ([]*types.TestRound, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TestRound{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *testRoundRepo) GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID, conceptID uuid.UUID) ([]*types.TestRound, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TestRound
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
