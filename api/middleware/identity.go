package middleware

import (
	"net/http"
	"strings"

	"github.com/brandcrew/ambassador-crm/pkg/logger"
)

const userIDHeader = "X-User-Id"

// Identity captures the gateway-injected user header. Authentication lives in
// front of this service; the header is trusted as-is and only propagated.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
