package examprep

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type DiagnosticQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ChapterDiagnosticQuestion) (*types.ChapterDiagnosticQuestion, error)
	GetByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.ChapterDiagnosticQuestion, error)
}

type diagnosticQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiagnosticQuestionRepo(db *gorm.DB, baseLog *logger.Logger) DiagnosticQuestionRepo {
	return &diagnosticQuestionRepo{db: db, log: baseLog.With("repo", "DiagnosticQuestionRepo")}
}

func (r *diagnosticQuestionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ChapterDiagnosticQuestion) (*types.ChapterDiagnosticQuestion, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *diagnosticQuestionRepo) GetByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.ChapterDiagnosticQuestion, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ChapterDiagnosticQuestion
	if chapterID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("question_order_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
