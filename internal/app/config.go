package app

import (
	examprepclient "github.com/peak10/examprep-backend/internal/clients/examprep"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/utils"
)

type Config struct {
	Port         string
	JWTSecretKey string
	ExamPrep     examprepclient.Config
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:         utils.GetEnv("PORT", "8080", log),
		JWTSecretKey: utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		ExamPrep:     examprepclient.ConfigFromEnv(log),
	}
}
