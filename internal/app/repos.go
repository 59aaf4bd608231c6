package app

import (
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/data/repos"
	"github.com/peak10/examprep-backend/internal/platform/logger"
)

type Repos struct {
	Chapter            repos.ChapterRepo
	Concept            repos.ConceptRepo
	Question           repos.QuestionRepo
	DiagnosticQuestion repos.DiagnosticQuestionRepo
	RevisionRound      repos.RevisionRoundRepo
	TestRound          repos.TestRoundRepo
	User               repos.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Chapter:            repos.NewChapterRepo(db, log),
		Concept:            repos.NewConceptRepo(db, log),
		Question:           repos.NewQuestionRepo(db, log),
		DiagnosticQuestion: repos.NewDiagnosticQuestionRepo(db, log),
		RevisionRound:      repos.NewRevisionRoundRepo(db, log),
		TestRound:          repos.NewTestRoundRepo(db, log),
		User:               repos.NewUserRepo(db, log),
	}
}
