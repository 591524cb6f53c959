package jwt

import (
	"errors"
	"time"

	"clinic-backoffice/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "clinic-backoffice"

var ErrInvalidToken = errors.New("invalid session token")

// Claims identify a session. The role is deliberately absent: it is read from the database per request.
type Claims struct {
	PatientID uuid.UUID `json:"patient_id"`
	Email     string    `json:"email"`
	TokenID   string    `json:"token_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.SessionConfig
	parser *jwt.Parser
}

func NewJWTService(cfg config.SessionConfig) *JWTService {
	return &JWTService{
		config: cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateSessionToken signs a new session token and returns it with its token id.
func (s *JWTService) GenerateSessionToken(patientID uuid.UUID, email string) (string, string, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		PatientID: patientID,
		Email:     email,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   patientID.String(),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
	}).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

// ValidateToken checks signature, issuer and expiry. Revocation is the
// session store's concern.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.TokenID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *JWTService) GetSessionTTL() time.Duration {
	return s.config.TTL
}
