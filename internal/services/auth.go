package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	redisclient "github.com/peak10/examprep-backend/internal/clients/redis"
	"github.com/peak10/examprep-backend/internal/data/repos"
	"github.com/peak10/examprep-backend/internal/platform/ctxutil"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService validates access tokens and resolves the signed-in user. The
// admin frontend obtains tokens from the identity provider; this service only
// verifies them and loads the user record (Redis session cache first, then
// postgres).
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	sessionStore redisclient.SessionStore
	jwtSecretKey string
}

func NewAuthService(
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	sessionStore redisclient.SessionStore,
	jwtSecretKey string,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		log:          serviceLog,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		jwtSecretKey: jwtSecretKey,
	}
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	userID, err := s.parseToken(tokenString)
	if err != nil {
		return ctx, err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return ctx, err
	}
	if user == nil {
		return ctx, ErrInvalidToken
	}

	rd := &ctxutil.RequestData{UserID: user.ID, UserEmail: user.Email}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (s *authService) parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

func (s *authService) loadUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	if s.sessionStore != nil {
		cached, err := s.sessionStore.GetUser(ctx, userID)
		if err != nil {
			s.log.Warn("Session store lookup failed, falling back to db", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user != nil && s.sessionStore != nil {
		if err := s.sessionStore.SetUser(ctx, user); err != nil {
			s.log.Warn("Session store write failed", "error", err)
		}
	}
	return user, nil
}
