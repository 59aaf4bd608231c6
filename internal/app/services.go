package app

import (
	"fmt"

	"gorm.io/gorm"

	examprepclient "github.com/peak10/examprep-backend/internal/clients/examprep"
	redisclient "github.com/peak10/examprep-backend/internal/clients/redis"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Chapter      services.ChapterService
	QuestionBank services.QuestionBankService
	Round        services.RoundService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, redisclient.SessionStore, error) {
	log.Info("Wiring services...")

	extraction, err := examprepclient.NewClient(log, cfg.ExamPrep)
	if err != nil {
		return Services{}, nil, fmt.Errorf("init exam prep client: %w", err)
	}

	// Redis is optional: without it every request resolves the user from
	// postgres.
	sessionStore, err := redisclient.NewSessionStore(log)
	if err != nil {
		log.Warn("Session store unavailable, continuing without cache", "error", err)
		sessionStore = nil
	}

	authService := services.NewAuthService(log, reposet.User, sessionStore, cfg.JWTSecretKey)
	chapterService := services.NewChapterService(db, log, reposet.Chapter, reposet.Concept, reposet.DiagnosticQuestion)
	questionBankService := services.NewQuestionBankService(db, log, extraction, reposet.Concept, reposet.Question, reposet.DiagnosticQuestion)
	roundService := services.NewRoundService(db, log, reposet.RevisionRound, reposet.TestRound)

	return Services{
		Auth:         authService,
		Chapter:      chapterService,
		QuestionBank: questionBankService,
		Round:        roundService,
	}, sessionStore, nil
}
