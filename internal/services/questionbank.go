package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	examprepclient "github.com/peak10/examprep-backend/internal/clients/examprep"
	"github.com/peak10/examprep-backend/internal/data/repos"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

type IngestErrorKind string

const (
	IngestErrorExtraction IngestErrorKind = "extraction"
	IngestErrorParse      IngestErrorKind = "parse"
	IngestErrorStorage    IngestErrorKind = "storage"
)

// IngestError carries the failure category so callers can decide how to react
// instead of every failure disappearing into a log line.
type IngestError struct {
	Kind IngestErrorKind
	Err  error
}

func (e *IngestError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }
func (e *IngestError) Unwrap() error { return e.Err }

const (
	IngestStatusCompleted = "completed"
	IngestStatusSkipped   = "skipped"
	IngestStatusFailed    = "failed"
)

// IngestReport summarizes one ingestion call. It is always returned, also on
// failure, so the HTTP boundary can surface a failed report without raising.
type IngestReport struct {
	ChapterID uuid.UUID       `json:"chapter_id"`
	Status    string          `json:"status"`
	Extracted int             `json:"extracted"`
	Unmatched int             `json:"unmatched"`
	Deleted   int             `json:"deleted"`
	Created   int             `json:"created"`
	ErrorKind IngestErrorKind `json:"error_kind,omitempty"`
}

type ConceptUpload struct {
	BroadConcept string  `json:"broad_concept"`
	Weightage    float64 `json:"weightage"`
}

// QuestionBankService drives extraction and commits the results as a
// replace-or-append batch against the chapter's question bank.
type QuestionBankService interface {
	PrepareQuestions(ctx context.Context, chapterID uuid.UUID, questionBankFile string, isInventQuestions bool) (*IngestReport, error)
	UploadChapterConcepts(ctx context.Context, chapterID uuid.UUID, conceptualMap []ConceptUpload) (*IngestReport, error)
	GenerateDiagnosticQuestions(ctx context.Context, chapterID uuid.UUID) (*IngestReport, error)
	IdentifyConcepts(ctx context.Context, questionBankFile string) ([]examprepclient.ConceptCandidate, error)
}

type questionBankService struct {
	db             *gorm.DB
	log            *logger.Logger
	extraction     examprepclient.Client
	conceptRepo    repos.ConceptRepo
	questionRepo   repos.QuestionRepo
	diagnosticRepo repos.DiagnosticQuestionRepo
}

func NewQuestionBankService(
	db *gorm.DB,
	baseLog *logger.Logger,
	extraction examprepclient.Client,
	conceptRepo repos.ConceptRepo,
	questionRepo repos.QuestionRepo,
	diagnosticRepo repos.DiagnosticQuestionRepo,
) QuestionBankService {
	serviceLog := baseLog.With("service", "QuestionBankService")
	return &questionBankService{
		db:             db,
		log:            serviceLog,
		extraction:     extraction,
		conceptRepo:    conceptRepo,
		questionRepo:   questionRepo,
		diagnosticRepo: diagnosticRepo,
	}
}

func ingestErr(kind IngestErrorKind, err error) *IngestError {
	var parseErr *examprepclient.ParseError
	if errors.As(err, &parseErr) {
		kind = IngestErrorParse
	}
	return &IngestError{Kind: kind, Err: err}
}

func failed(report *IngestReport, err *IngestError) (*IngestReport, error) {
	report.Status = IngestStatusFailed
	report.ErrorKind = err.Kind
	return report, err
}

func (s *questionBankService) PrepareQuestions(ctx context.Context, chapterID uuid.UUID, questionBankFile string, isInventQuestions bool) (*IngestReport, error) {
	report := &IngestReport{ChapterID: chapterID}
	log := s.log.With("chapter_id", chapterID, "is_invent_questions", isInventQuestions)

	concepts, err := s.conceptRepo.GetByChapterID(ctx, nil, chapterID)
	if err != nil {
		log.Error("PrepareQuestions: load concepts failed", "error", err)
		return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("load chapter concepts: %w", err)))
	}

	conceptNames := make([]string, len(concepts))
	conceptIDByName := make(map[string]uuid.UUID, len(concepts))
	conceptIDs := make([]uuid.UUID, len(concepts))
	for i, c := range concepts {
		conceptNames[i] = c.Name
		conceptIDByName[c.Name] = c.ID
		conceptIDs[i] = c.ID
	}

	extracted, err := s.extraction.PrepQuestions(ctx, questionBankFile, conceptNames, isInventQuestions)
	if err != nil {
		log.Error("PrepareQuestions: extraction failed", "error", err)
		return failed(report, ingestErr(IngestErrorExtraction, fmt.Errorf("prep questions: %w", err)))
	}
	report.Extracted = len(extracted.Questions)
	if len(extracted.Questions) == 0 {
		log.Info("PrepareQuestions: extraction returned no questions, nothing to do")
		report.Status = IngestStatusSkipped
		return report, nil
	}

	now := time.Now().UTC()
	rows := make([]*types.Question, len(extracted.Questions))
	for i, q := range extracted.Questions {
		// Exact name match; unresolved names stay orphaned rather than failing
		// the whole batch.
		var conceptID *uuid.UUID
		if id, ok := conceptIDByName[q.Concept]; ok {
			conceptID = &id
		} else {
			report.Unmatched++
		}
		rows[i] = &types.Question{
			ID:             uuid.New(),
			ConceptID:      conceptID,
			Type:           q.Type,
			QuestionStream: datatypes.JSON(q.QuestionStream),
			Options:        datatypes.JSON(q.Options),
			CorrectOption:  q.CorrectOption,
			Difficulty:     q.Difficulty,
			Hint:           q.Hint,
			FinalAnswer:    q.FinalAnswer,
			AnswerStream:   datatypes.JSON(q.DetailedSolutionStream),
			Status:         types.QuestionStatusNeedsVerification,
			IsInvented:     isInventQuestions,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	// Ordinary ingestion replaces the chapter's question set; invented
	// questions append. The delete runs before the insert transaction and is
	// not covered by it.
	if !isInventQuestions {
		existing, err := s.questionRepo.GetByConceptIDs(ctx, nil, conceptIDs)
		if err != nil {
			log.Error("PrepareQuestions: load existing questions failed", "error", err)
			return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("load existing questions: %w", err)))
		}
		if len(existing) > 0 {
			existingIDs := make([]uuid.UUID, len(existing))
			for i, q := range existing {
				existingIDs[i] = q.ID
			}
			if err := s.questionRepo.FullDeleteByIDs(ctx, nil, existingIDs); err != nil {
				log.Error("PrepareQuestions: delete existing questions failed", "error", err)
				return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("delete existing questions: %w", err)))
			}
			report.Deleted = len(existingIDs)
		}
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.questionRepo.Create(ctx, tx, rows)
		return err
	}); err != nil {
		log.Error("PrepareQuestions: create questions failed", "error", err)
		return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("create questions: %w", err)))
	}
	report.Created = len(rows)
	report.Status = IngestStatusCompleted

	log.Info("PrepareQuestions completed",
		"extracted", report.Extracted,
		"unmatched", report.Unmatched,
		"deleted", report.Deleted,
		"created", report.Created,
	)
	return report, nil
}

func (s *questionBankService) UploadChapterConcepts(ctx context.Context, chapterID uuid.UUID, conceptualMap []ConceptUpload) (*IngestReport, error) {
	report := &IngestReport{ChapterID: chapterID}
	log := s.log.With("chapter_id", chapterID)

	now := time.Now().UTC()
	rows := make([]*types.Concept, len(conceptualMap))
	for i, entry := range conceptualMap {
		rows[i] = &types.Concept{
			ID:                 uuid.New(),
			ChapterID:          chapterID,
			Name:               entry.BroadConcept,
			ConceptOrderNumber: i + 1,
			Weightage:          entry.Weightage,
			IsActive:           true,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	// Replacing concepts always discards history, invented mode included.
	// Questions keyed to the old concepts dangle until the next re-extraction.
	existing, err := s.conceptRepo.GetByChapterID(ctx, nil, chapterID)
	if err != nil {
		log.Error("UploadChapterConcepts: load existing concepts failed", "error", err)
		return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("load existing concepts: %w", err)))
	}
	if len(existing) > 0 {
		existingIDs := make([]uuid.UUID, len(existing))
		for i, c := range existing {
			existingIDs[i] = c.ID
		}
		if err := s.conceptRepo.FullDeleteByIDs(ctx, nil, existingIDs); err != nil {
			log.Error("UploadChapterConcepts: delete existing concepts failed", "error", err)
			return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("delete existing concepts: %w", err)))
		}
		report.Deleted = len(existingIDs)
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.conceptRepo.Create(ctx, tx, rows)
		return err
	}); err != nil {
		log.Error("UploadChapterConcepts: create concepts failed", "error", err)
		return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("create concepts: %w", err)))
	}
	report.Created = len(rows)
	report.Status = IngestStatusCompleted

	log.Info("UploadChapterConcepts completed", "deleted", report.Deleted, "created", report.Created)
	return report, nil
}

func (s *questionBankService) GenerateDiagnosticQuestions(ctx context.Context, chapterID uuid.UUID) (*IngestReport, error) {
	report := &IngestReport{ChapterID: chapterID}
	log := s.log.With("chapter_id", chapterID)

	result, err := s.extraction.GenerateDiagnosticQuestions(ctx, chapterID)
	if err != nil {
		log.Error("GenerateDiagnosticQuestions: backend call failed", "error", err)
		return failed(report, ingestErr(IngestErrorExtraction, fmt.Errorf("generate diagnostic questions: %w", err)))
	}
	if len(result.QuestionIDs) == 0 {
		log.Info("GenerateDiagnosticQuestions: backend returned no question ids")
		report.Status = IngestStatusSkipped
		return report, nil
	}
	report.Extracted = len(result.QuestionIDs)

	// Diagnostic sets accumulate additively; no delete step. Rows are created
	// one by one inside the transaction, ordered by position.
	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, questionID := range result.QuestionIDs {
			row := &types.ChapterDiagnosticQuestion{
				ID:                  uuid.New(),
				ChapterID:           chapterID,
				QuestionID:          questionID,
				QuestionOrderNumber: i + 1,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			if _, err := s.diagnosticRepo.Create(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		log.Error("GenerateDiagnosticQuestions: create diagnostic rows failed", "error", err)
		return failed(report, ingestErr(IngestErrorStorage, fmt.Errorf("create diagnostic questions: %w", err)))
	}
	report.Created = len(result.QuestionIDs)
	report.Status = IngestStatusCompleted

	log.Info("GenerateDiagnosticQuestions completed", "created", report.Created)
	return report, nil
}

func (s *questionBankService) IdentifyConcepts(ctx context.Context, questionBankFile string) ([]examprepclient.ConceptCandidate, error) {
	candidates, err := s.extraction.IdentifyConcepts(ctx, questionBankFile)
	if err != nil {
		s.log.Error("IdentifyConcepts failed", "error", err)
		return nil, ingestErr(IngestErrorExtraction, fmt.Errorf("identify concepts: %w", err))
	}
	return candidates, nil
}
