package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/peak10/examprep-backend/internal/http/handlers"
	httpMW "github.com/peak10/examprep-backend/internal/http/middleware"
)

type RouterConfig struct {
	HealthHandler *httpH.HealthHandler

	AuthMiddleware *httpMW.AuthMiddleware

	ChapterHandler      *httpH.ChapterHandler
	QuestionBankHandler *httpH.QuestionBankHandler
	RoundHandler        *httpH.RoundHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Chapters
		if cfg.ChapterHandler != nil {
			protected.GET("/chapters", cfg.ChapterHandler.ListChapters)
			protected.POST("/chapters", cfg.ChapterHandler.CreateChapter)
			protected.GET("/chapters/:id/concepts", cfg.ChapterHandler.ListChapterConcepts)
			protected.GET("/chapters/:id/diagnostic-questions", cfg.ChapterHandler.ListDiagnosticQuestions)
		}

		// Question bank ingestion
		if cfg.QuestionBankHandler != nil {
			protected.POST("/chapters/:id/concepts", cfg.QuestionBankHandler.UploadChapterConcepts)
			protected.POST("/chapters/:id/questions/prepare", cfg.QuestionBankHandler.PrepareQuestions)
			protected.POST("/chapters/:id/diagnostic-questions", cfg.QuestionBankHandler.GenerateDiagnosticQuestions)
			protected.POST("/question-bank/identify-concepts", cfg.QuestionBankHandler.IdentifyConcepts)
		}

		// Rounds
		if cfg.RoundHandler != nil {
			protected.GET("/concepts/:id/revision-rounds", cfg.RoundHandler.ListRevisionRounds)
			protected.GET("/concepts/:id/test-rounds", cfg.RoundHandler.ListTestRounds)
		}
	}

	return r
}
