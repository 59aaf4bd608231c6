package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/peak10/examprep-backend/internal/http"
	httpH "github.com/peak10/examprep-backend/internal/http/handlers"
	httpMW "github.com/peak10/examprep-backend/internal/http/middleware"
	"github.com/peak10/examprep-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Chapter      *httpH.ChapterHandler
	QuestionBank *httpH.QuestionBankHandler
	Round        *httpH.RoundHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Chapter:      httpH.NewChapterHandler(log, serviceset.Chapter),
		QuestionBank: httpH.NewQuestionBankHandler(log, serviceset.QuestionBank),
		Round:        httpH.NewRoundHandler(log, serviceset.Round),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(handlerset Handlers, middleware Middleware) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		HealthHandler:       handlerset.Health,
		AuthMiddleware:      middleware.Auth,
		ChapterHandler:      handlerset.Chapter,
		QuestionBankHandler: handlerset.QuestionBank,
		RoundHandler:        handlerset.Round,
	})
}
