package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/types"
)

func SeedChapter(tb testing.TB, gdb *gorm.DB, name string) *types.Chapter {
	tb.Helper()
	now := time.Now().UTC()
	ch := &types.Chapter{ID: uuid.New(), Name: name, Subject: "physics", CreatedAt: now, UpdatedAt: now}
	if err := gdb.WithContext(context.Background()).Create(ch).Error; err != nil {
		tb.Fatalf("seed chapter: %v", err)
	}
	return ch
}

func SeedConcept(tb testing.TB, gdb *gorm.DB, chapterID uuid.UUID, name string, order int) *types.Concept {
	tb.Helper()
	now := time.Now().UTC()
	c := &types.Concept{
		ID:                 uuid.New(),
		ChapterID:          chapterID,
		Name:               name,
		ConceptOrderNumber: order,
		Weightage:          1,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := gdb.WithContext(context.Background()).Create(c).Error; err != nil {
		tb.Fatalf("seed concept: %v", err)
	}
	return c
}

func SeedQuestion(tb testing.TB, gdb *gorm.DB, conceptID *uuid.UUID) *types.Question {
	tb.Helper()
	now := time.Now().UTC()
	q := &types.Question{
		ID:             uuid.New(),
		ConceptID:      conceptID,
		Type:           "mcq",
		QuestionStream: []byte(`[{"kind":"text","content_md":"seed"}]`),
		Options:        []byte(`[]`),
		Status:         types.QuestionStatusNeedsVerification,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := gdb.WithContext(context.Background()).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedDiagnosticQuestion(tb testing.TB, gdb *gorm.DB, chapterID, questionID uuid.UUID, order int) *types.ChapterDiagnosticQuestion {
	tb.Helper()
	now := time.Now().UTC()
	row := &types.ChapterDiagnosticQuestion{
		ID:                  uuid.New(),
		ChapterID:           chapterID,
		QuestionID:          questionID,
		QuestionOrderNumber: order,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := gdb.WithContext(context.Background()).Create(row).Error; err != nil {
		tb.Fatalf("seed diagnostic question: %v", err)
	}
	return row
}

func SeedUser(tb testing.TB, gdb *gorm.DB, email string) *types.User {
	tb.Helper()
	now := time.Now().UTC()
	u := &types.User{ID: uuid.New(), Email: email, Name: "Test User", CreatedAt: now, UpdatedAt: now}
	if err := gdb.WithContext(context.Background()).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}
