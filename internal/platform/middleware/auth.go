package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"scanid/pkg/domain"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator. The
// organization ID scopes every scan and allocation; no authorization policy
// is applied here.
type JWTClaims struct {
	OrganizationID domain.OrganizationID
	Subject        string
}

type contextKeyOrganizationID struct{}
type contextKeySubject struct{}

// WithIdentity stores the authenticated identity in the context. Exported for
// handler tests that bypass RequireAuth.
func WithIdentity(ctx context.Context, orgID domain.OrganizationID, subject string) context.Context {
	ctx = context.WithValue(ctx, contextKeyOrganizationID{}, orgID)
	return context.WithValue(ctx, contextKeySubject{}, subject)
}

// GetOrganizationID retrieves the authenticated organization from the context.
func GetOrganizationID(ctx context.Context) domain.OrganizationID {
	id, ok := ctx.Value(contextKeyOrganizationID{}).(domain.OrganizationID)
	if !ok {
		return domain.OrganizationID{}
	}
	return id
}

// GetSubject retrieves the authenticated subject from the context.
func GetSubject(ctx context.Context) string {
	sub, ok := ctx.Value(contextKeySubject{}).(string)
	if !ok {
		return ""
	}
	return sub
}

// RequireAuth validates the bearer token and stores the organization identity
// in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), claims.OrganizationID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
