package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wasteworks/wasteworks-api/internal/pkg/response"
	"github.com/wasteworks/wasteworks-api/internal/pkg/token"
)

type contextKey string

const (
	ActorIDKey contextKey = "actor_id"
	RoleKey    contextKey = "role"
)

// Auth returns middleware that validates the bearer token and attaches the
// actor identity to the request context.
func Auth(tokenService *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := tokenService.Validate(parts[1])
			if err != nil {
				if err == token.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ActorIDKey, claims.ActorID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActorID extracts the authenticated actor id from context
func GetActorID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ActorIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts the actor role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// RequireRole returns middleware that checks the actor role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorRole := GetRole(r.Context())

			for _, role := range roles {
				if actorRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireStaff requires any staff role
func RequireStaff() func(http.Handler) http.Handler {
	return RequireRole("collector", "supervisor", "admin")
}

// RequireSupervisor requires supervisor or admin role
func RequireSupervisor() func(http.Handler) http.Handler {
	return RequireRole("supervisor", "admin")
}

// RequireAdmin requires admin role
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole("admin")
}
