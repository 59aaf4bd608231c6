package db

import (
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/types"
)

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},

		&types.Chapter{},
		&types.Concept{},
		&types.Question{},
		&types.ChapterDiagnosticQuestion{},

		&types.RevisionRound{},
		&types.TestRound{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
