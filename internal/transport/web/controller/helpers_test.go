package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/americanadages/adages-society/internal/command"
	"github.com/americanadages/adages-society/internal/domain"
)

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)))
		return r.WithContext(ctx)
	}
}

func testContextWithUserID(userID string) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = domain.ContextWithUserID(ctx, userID)
		return r.WithContext(ctx)
	}
}

type stubProfileCmd struct {
	profile domain.CurrentUserProfile
	err     error
	gotReq  *command.GetCurrentUserProfileRequest
}

func (s *stubProfileCmd) Execute(
	_ context.Context, req command.GetCurrentUserProfileRequest,
) (domain.CurrentUserProfile, error) {
	s.gotReq = &req
	return s.profile, s.err
}

func decodeEnvelope[T any](t *testing.T, body []byte) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}
