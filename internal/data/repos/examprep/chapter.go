package examprep

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type ChapterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Chapter) ([]*types.Chapter, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chapter, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error)
}

type chapterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChapterRepo(db *gorm.DB, baseLog *logger.Logger) ChapterRepo {
	return &chapterRepo{db: db, log: baseLog.With("repo", "ChapterRepo")}
}

func (r *chapterRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Chapter) ([]*types.Chapter, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Chapter{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *chapterRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chapter, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Chapter
	if err := t.WithContext(ctx).Where("id = ?", id).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *chapterRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Chapter
	if err := t.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
