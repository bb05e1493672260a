package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags each request with an id for log correlation. The gateway
// usually sets the header; one is minted when it is missing or blank. The
// id is echoed back so the console can surface it in error reports.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
