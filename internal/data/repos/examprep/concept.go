package examprep

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type ConceptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Concept) ([]*types.Concept, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Concept, error)
	// GetByChapterID returns the chapter's concepts ordered by
	// concept_order_number ascending.
	GetByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.Concept, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	FullDeleteByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) error
}

type conceptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConceptRepo(db *gorm.DB, baseLog *logger.Logger) ConceptRepo {
	return &conceptRepo{db: db, log: baseLog.With("repo", "ConceptRepo")}
}

func (r *conceptRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Concept) ([]*types.Concept, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Concept{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *conceptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Concept, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Concept
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conceptRepo) GetByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.Concept, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Concept
	if chapterID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("concept_order_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conceptRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&types.Concept{}).Error
}

func (r *conceptRepo) FullDeleteByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if chapterID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("chapter_id = ?", chapterID).Delete(&types.Concept{}).Error
}
