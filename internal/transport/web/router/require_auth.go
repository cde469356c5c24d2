package router

import (
	"net/http"

	"github.com/americanadages/adages-society/internal/domain"
	"github.com/americanadages/adages-society/internal/transport/web/controller"
)

func requireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := domain.UserIDFromContext(r.Context())
		if userID == "" {
			logger := domain.LoggerFromContext(r.Context())
			logger.InfoContext(r.Context(), "attempt to use endpoint requiring auth without user ID")
			controller.WriteError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		next.ServeHTTP(w, r)
	})
}
