package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
)

// RequireSession validates the bearer token and rechecks its embedded
// credential signature against the live one. A token issued before a
// credential rotation carries a stale signature and is rejected, so rotation
// invalidates every outstanding token immediately.
func (m *Middleware) RequireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			m.log.Debug(ctx, "token validation failed", "err", err.Error())
			errorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if claims.Signature != m.session.CurrentSignature() {
			m.log.Info(ctx, "rejected token with stale credential signature", "operator", claims.Username)
			errorResponse(w, http.StatusUnauthorized, types.ErrStaleSession.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(wrap.WithOperator(ctx, claims.Username)))
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
