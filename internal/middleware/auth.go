package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/OntriDS/thegame-sub002/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OperatorIDKey is the context key for storing the authenticated operator ID.
	OperatorIDKey contextKey = "operator_id"
	// EmailKey is the context key for storing the authenticated operator's email.
	EmailKey contextKey = "email"
)

// GetOperatorID extracts the operator ID from the context.
// Returns empty string if not found.
func GetOperatorID(ctx context.Context) string {
	operatorID, _ := ctx.Value(OperatorIDKey).(string)
	return operatorID
}

// WithOperator returns a context carrying the given operator identity.
func WithOperator(ctx context.Context, operatorID, email string) context.Context {
	ctx = context.WithValue(ctx, OperatorIDKey, operatorID)
	return context.WithValue(ctx, EmailKey, email)
}

// GetEmail extracts the operator email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// bearerClaims parses and validates the Bearer token in an Authorization header.
func bearerClaims(jwtManager *auth.JWTManager, authHeader string) (*auth.Claims, error) {
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(parts[1])
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the operator ID and email to the request context.
// Procedures listed in public accept anonymous callers but still pick up a valid token.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, procedure := range public {
		skip[procedure] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := bearerClaims(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				if skip[req.Spec().Procedure] {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithOperator(ctx, claims.OperatorID, claims.Email), req)
		}
	}
}
