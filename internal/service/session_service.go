package service

import (
	"context"
	"errors"
	"fmt"

	"clinic-backoffice/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionInvalid = errors.New("invalid or expired session")
	ErrSessionRevoked = errors.New("session has been revoked")
)

const sessionKeyPrefix = "session:"

// SessionService issues signed session tokens and tracks live sessions in Redis.
// A token is only accepted while its key exists, so logout takes effect immediately.
type SessionService struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSessionService(jwtService *jwt.JWTService, redisClient *redis.Client, log *logrus.Logger) *SessionService {
	return &SessionService{
		jwtService:  jwtService,
		redisClient: redisClient,
		log:         log,
	}
}

func sessionKey(patientID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, patientID.String(), tokenID)
}

// Create issues a token for the patient and registers it for the session TTL.
func (s *SessionService) Create(ctx context.Context, patientID uuid.UUID, email string) (string, error) {
	token, tokenID, err := s.jwtService.GenerateSessionToken(patientID, email)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if err := s.redisClient.Set(ctx, sessionKey(patientID, tokenID), "valid", s.jwtService.GetSessionTTL()).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Validate returns the claims of a live session.
func (s *SessionService) Validate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	exists, err := s.redisClient.Exists(ctx, sessionKey(claims.PatientID, claims.TokenID)).Result()
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// Revoke ends one session.
func (s *SessionService) Revoke(ctx context.Context, patientID uuid.UUID, tokenID string) error {
	if err := s.redisClient.Del(ctx, sessionKey(patientID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to revoke session %s: %+v", tokenID, err)
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeAll ends every session of a patient.
func (s *SessionService) RevokeAll(ctx context.Context, patientID uuid.UUID) error {
	pattern := fmt.Sprintf("%s%s:*", sessionKeyPrefix, patientID.String())

	var keys []string
	iter := s.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to revoke sessions for %s: %+v", patientID, err)
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
