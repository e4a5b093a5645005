package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AhmedKettaf/inilapstore/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// CartToken reads the caller's cart token, minting one for first-time
// visitors. The token is always echoed back so the client can persist it.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
			if token == "" || uuid.Validate(token) != nil {
				token = uuid.NewString()
			}

			w.Header().Set(cartTokenHeader, token)

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
