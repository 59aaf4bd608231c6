package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peak10/examprep-backend/internal/data/repos"
	"github.com/peak10/examprep-backend/internal/platform/ctxutil"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

var ErrNoUserInContext = errors.New("no signed-in user in request context")

// RoundService exposes a learner's revision/test progress per concept. Pure
// reads; round creation lives in the learner-facing app.
type RoundService interface {
	GetRevisionRounds(ctx context.Context, tx *gorm.DB, conceptID uuid.UUID) ([]*types.RevisionRound, error)
	GetTestRounds(ctx context.Context, tx *gorm.DB, conceptID uuid.UUID) ([]*types.TestRound, error)
}

type roundService struct {
	db            *gorm.DB
	log           *logger.Logger
	revisionRepo  repos.RevisionRoundRepo
	testRoundRepo repos.TestRoundRepo
}

func NewRoundService(
	db *gorm.DB,
	baseLog *logger.Logger,
	revisionRepo repos.RevisionRoundRepo,
	testRoundRepo repos.TestRoundRepo,
) RoundService {
	serviceLog := baseLog.With("service", "RoundService")
	return &roundService{
		db:            db,
		log:           serviceLog,
		revisionRepo:  revisionRepo,
		testRoundRepo: testRoundRepo,
	}
}

func currentUserID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, ErrNoUserInContext
	}
	return rd.UserID, nil
}

func (s *roundService) GetRevisionRounds(ctx context.Context, tx *gorm.DB, conceptID uuid.UUID) ([]*types.RevisionRound, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	rounds, err := s.revisionRepo.GetByUserAndConcept(ctx, tx, userID, conceptID)
	if err != nil {
		return nil, fmt.Errorf("load revision rounds: %w", err)
	}
	return rounds, nil
}

func (s *roundService) GetTestRounds(ctx context.Context, tx *gorm.DB, conceptID uuid.UUID) ([]*types.TestRound, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	rounds, err := s.testRoundRepo.GetByUserAndConcept(ctx, tx, userID, conceptID)
	if err != nil {
		return nil, fmt.Errorf("load test rounds: %w", err)
	}
	return rounds, nil
}
