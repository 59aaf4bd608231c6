package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/data/repos"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type ChapterService interface {
	CreateChapter(ctx context.Context, tx *gorm.DB, name, subject string) (*types.Chapter, error)
	ListChapters(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error)
	ListChapterConcepts(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.Concept, error)
	ListDiagnosticQuestions(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.ChapterDiagnosticQuestion, error)
}

type chapterService struct {
	db             *gorm.DB
	log            *logger.Logger
	chapterRepo    repos.ChapterRepo
	conceptRepo    repos.ConceptRepo
	diagnosticRepo repos.DiagnosticQuestionRepo
}

func NewChapterService(
	db *gorm.DB,
	baseLog *logger.Logger,
	chapterRepo repos.ChapterRepo,
	conceptRepo repos.ConceptRepo,
	diagnosticRepo repos.DiagnosticQuestionRepo,
) ChapterService {
	serviceLog := baseLog.With("service", "ChapterService")
	return &chapterService{
		db:             db,
		log:            serviceLog,
		chapterRepo:    chapterRepo,
		conceptRepo:    conceptRepo,
		diagnosticRepo: diagnosticRepo,
	}
}

func (s *chapterService) CreateChapter(ctx context.Context, tx *gorm.DB, name, subject string) (*types.Chapter, error) {
	if name == "" {
		return nil, fmt.Errorf("chapter name required")
	}
	now := time.Now().UTC()
	chapter := &types.Chapter{
		ID:        uuid.New(),
		Name:      name,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.chapterRepo.Create(ctx, tx, []*types.Chapter{chapter}); err != nil {
		s.log.Error("CreateChapter failed", "error", err)
		return nil, fmt.Errorf("create chapter: %w", err)
	}
	return chapter, nil
}

func (s *chapterService) ListChapters(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error) {
	return s.chapterRepo.GetAll(ctx, tx)
}

func (s *chapterService) ListChapterConcepts(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.Concept, error) {
	return s.conceptRepo.GetByChapterID(ctx, tx, chapterID)
}

func (s *chapterService) ListDiagnosticQuestions(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) ([]*types.ChapterDiagnosticQuestion, error) {
	return s.diagnosticRepo.GetByChapterID(ctx, tx, chapterID)
}
