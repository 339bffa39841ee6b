package middleware

import (
	"net/http"
	"strings"

	"github.com/nemesis-app/nemesis-server/internal/app/services/auth"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/internal/httputil"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// AuthMiddleware validates Bearer tokens and injects the user id into the
// request context.
type AuthMiddleware struct {
	tokens    *auth.Service
	log       *logger.Logger
	skipPaths map[string]bool
}

// NewAuthMiddleware creates an authentication middleware. Requests to the
// given paths pass through unauthenticated.
func NewAuthMiddleware(tokens *auth.Service, log *logger.Logger, skipPaths []string) *AuthMiddleware {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &AuthMiddleware{tokens: tokens, log: log, skipPaths: skip}
}

// Handler returns the middleware handler.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			m.respondError(w, r, apperrors.Unauthorized("missing Authorization header"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.respondError(w, r, apperrors.Unauthorized("invalid Authorization header format"))
			return
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			m.respondError(w, r, err)
			return
		}

		ctx := WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) respondError(w http.ResponseWriter, r *http.Request, err error) {
	m.log.WithError(err).WithFields(map[string]interface{}{
		"path":   r.URL.Path,
		"method": r.Method,
	}).Warn("authentication failed")
	httputil.WriteError(w, err)
}
