package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"planet-designer/internal/auth"
	"planet-designer/internal/shared/cookies"
	"planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/response"
)

type contextKey string

const ClaimsContextKey contextKey = "edit_claims"

// RequireEditToken admits a request only when it carries an edit token for the design
// named by the {id} path value. The token is read from a Bearer header or the edit cookie.
func RequireEditToken(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "edit_token",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing edit token")

			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(cookies.EditTokenName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				response.Error(w, r, logger, errors.Unauthorized("edit token required"))
				return
			}

			claims, err := issuer.Validate(token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid edit token"))
				return
			}

			designID, err := uuid.Parse(r.PathValue("id"))
			if err != nil {
				response.Error(w, r, logger, errors.WrapValidation("invalid design ID format", err))
				return
			}
			tokenDesignID, err := uuid.Parse(claims.DesignID)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid edit token"))
				return
			}
			if tokenDesignID != designID {
				response.Error(w, r, logger, errors.Forbidden("edit token does not grant access to this design"))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			logger.Debug("Edit token accepted", "design_id", claims.DesignID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetClaimsFromContext returns the edit claims stored by RequireEditToken
func GetClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
