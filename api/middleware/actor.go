package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Trang-1707/shoppi-backend/pkg/logger"
)

const (
	buyerIDHeader  = "X-Buyer-Id"
	sellerIDHeader = "X-Seller-Id"
)

// Actor lifts the acting buyer and seller identifiers from request headers
// into the context. Which one a route requires is enforced per handler.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := strings.TrimSpace(r.Header.Get(buyerIDHeader)); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					ctx = WithBuyerID(ctx, id.String())
					if logg != nil {
						ctx = logg.WithBuyerID(ctx, id.String())
					}
				}
			}
			if raw := strings.TrimSpace(r.Header.Get(sellerIDHeader)); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					ctx = WithSellerID(ctx, id.String())
					if logg != nil {
						ctx = logg.WithSellerID(ctx, id.String())
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
