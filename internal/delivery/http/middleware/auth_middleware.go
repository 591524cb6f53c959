package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinic-backoffice/internal/service"
	"clinic-backoffice/pkg/jwt"
	"clinic-backoffice/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	PatientIDKey contextKey = "patient_id"
	EmailKey     contextKey = "email"
	TokenIDKey   contextKey = "token_id"
	RoleKey      contextKey = "role"
)

// SessionValidator resolves a raw session token into its claims.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	sessions   SessionValidator
	cookieName string
}

func NewAuthMiddleware(sessions SessionValidator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// Authenticate accepts the session cookie or an "Authorization: Bearer" header.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := m.extractToken(r)
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := m.sessions.Validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) || errors.Is(err, service.ErrSessionRevoked) {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}
			response.InternalServerError(w, "Failed to validate session")
			return
		}

		ctx := WithSession(r.Context(), claims.PatientID, claims.Email, claims.TokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithSession stores the authenticated session in ctx.
func WithSession(ctx context.Context, patientID uuid.UUID, email, tokenID string) context.Context {
	ctx = context.WithValue(ctx, PatientIDKey, patientID)
	ctx = context.WithValue(ctx, EmailKey, email)
	return context.WithValue(ctx, TokenIDKey, tokenID)
}

// GetPatientIDFromContext extracts the authenticated account id from context
func GetPatientIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(PatientIDKey).(uuid.UUID)
	return id, ok
}

// GetEmailFromContext extracts the session email from context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts the session token id from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
