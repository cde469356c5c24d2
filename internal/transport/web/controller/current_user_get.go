package controller

import (
	"errors"
	"net/http"

	"github.com/americanadages/adages-society/internal/command"
	"github.com/americanadages/adages-society/internal/domain"
)

// CurrentUserGet handles GET /api/users/me.
type CurrentUserGet struct {
	GetProfileCmd command.Command[command.GetCurrentUserProfileRequest, domain.CurrentUserProfile]
}

func (c CurrentUserGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	logger := domain.LoggerFromContext(ctx).With("user_id", userID)
	ctx = domain.ContextWithLogger(ctx, logger)

	profile, err := c.GetProfileCmd.Execute(ctx, command.GetCurrentUserProfileRequest{UserID: userID})
	if errors.Is(err, domain.ErrNotFound) {
		logger.WarnContext(ctx, "authenticated user has no profile", "error", err)
		WriteError(w, r, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to load current user profile", "error", err)
		WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeSuccess(w, r, http.StatusOK, profile)
}
