package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RoleLoader reads the current role of an account. A nil error with ok=false means the account is gone.
type RoleLoader interface {
	LoadRole(ctx context.Context, patientID uuid.UUID) (entity.Role, bool, error)
}

type RoleMiddleware struct {
	roles RoleLoader
	log   *logrus.Logger
}

func NewRoleMiddleware(roles RoleLoader, log *logrus.Logger) *RoleMiddleware {
	return &RoleMiddleware{
		roles: roles,
		log:   log,
	}
}

// Require loads the caller's role from the database and checks it against the permission table.
// Must run after AuthMiddleware.Authenticate.
func (m *RoleMiddleware) Require(perm entity.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			patientID, ok := GetPatientIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			role, found, err := m.roles.LoadRole(r.Context(), patientID)
			if err != nil {
				m.log.Warnf("Failed to load role for %s: %+v", patientID, err)
				response.InternalServerError(w, "Failed to resolve permissions")
				return
			}
			if !found {
				response.Unauthorized(w, "Account not found")
				return
			}

			if !role.Can(perm) {
				email, _ := GetEmailFromContext(r.Context())
				m.log.WithFields(logrus.Fields{
					"email":      email,
					"role":       role,
					"permission": perm,
				}).Info("Permission denied")
				response.Forbidden(w, "You don't have permission to access this resource, requires one of: "+joinRoles(entity.AllowedRoles(perm)))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

// WithRole stores the resolved role in ctx.
func WithRole(ctx context.Context, role entity.Role) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// GetRoleFromContext extracts the role resolved by RoleMiddleware
func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(RoleKey).(entity.Role)
	return role, ok
}

func joinRoles(roles []entity.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
