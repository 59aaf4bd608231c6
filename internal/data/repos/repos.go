package repos

import (
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/data/repos/examprep"
	"github.com/peak10/examprep-backend/internal/data/repos/progress"
	"github.com/peak10/examprep-backend/internal/data/repos/user"
	"github.com/peak10/examprep-backend/internal/platform/logger"
)

type ChapterRepo = examprep.ChapterRepo
type ConceptRepo = examprep.ConceptRepo
type QuestionRepo = examprep.QuestionRepo
type DiagnosticQuestionRepo = examprep.DiagnosticQuestionRepo

type RevisionRoundRepo = progress.RevisionRoundRepo
type TestRoundRepo = progress.TestRoundRepo

type UserRepo = user.UserRepo

func NewChapterRepo(db *gorm.DB, baseLog *logger.Logger) ChapterRepo {
	return examprep.NewChapterRepo(db, baseLog)
}
func NewConceptRepo(db *gorm.DB, baseLog *logger.Logger) ConceptRepo {
	return examprep.NewConceptRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return examprep.NewQuestionRepo(db, baseLog)
}
func NewDiagnosticQuestionRepo(db *gorm.DB, baseLog *logger.Logger) DiagnosticQuestionRepo {
	return examprep.NewDiagnosticQuestionRepo(db, baseLog)
}

func NewRevisionRoundRepo(db *gorm.DB, baseLog *logger.Logger) RevisionRoundRepo {
	return progress.NewRevisionRoundRepo(db, baseLog)
}
func NewTestRoundRepo(db *gorm.DB, baseLog *logger.Logger) TestRoundRepo {
	return progress.NewTestRoundRepo(db, baseLog)
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}
