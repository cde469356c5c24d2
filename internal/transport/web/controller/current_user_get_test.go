package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanadages/adages-society/internal/domain"
)

func TestCurrentUserGet_ServeHTTP(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	profile := domain.CurrentUserProfile{
		Profile: domain.Profile{
			ID:        "user-1",
			Username:  "alice",
			Role:      "member",
			CreatedAt: created,
		},
		Stats: domain.ProfileStats{Friends: 2, ForumThreads: 1},
		CommendationStats: domain.CommendationStats{
			Reports: domain.ReportCounts{Received: 1},
			Votes:   domain.VoteTally{Upvotes: 3, Downvotes: 1, Net: 2},
			Contributions: domain.Contributions{
				Comments: 4,
				Adages:   1,
			},
			PopularPosts: []domain.PopularPost{
				{ID: "a1", Type: domain.CategoryAdage, Title: "Haste makes waste", Score: 2, CreatedAt: created},
			},
		},
	}

	cases := []struct {
		name      string
		userID    string
		cmdErr    error
		wantCall  bool
		wantCode  int
		wantError string
	}{
		{
			name:     "success",
			userID:   "user-1",
			wantCall: true,
			wantCode: http.StatusOK,
		},
		{
			name:      "unauthenticated",
			wantCode:  http.StatusUnauthorized,
			wantError: "Not authenticated",
		},
		{
			name:      "profile_missing",
			userID:    "user-1",
			cmdErr:    fmt.Errorf("fetching profile: %w", domain.ErrNotFound),
			wantCall:  true,
			wantCode:  http.StatusNotFound,
			wantError: "User not found",
		},
		{
			name:      "unexpected_failure",
			userID:    "user-1",
			cmdErr:    errors.New("connection refused"),
			wantCall:  true,
			wantCode:  http.StatusInternalServerError,
			wantError: "connection refused",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &stubProfileCmd{profile: profile, err: tc.cmdErr}
			controller := CurrentUserGet{GetProfileCmd: cmd}

			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req = testContextWithUserID(tc.userID)(req)
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tc.wantCall {
				require.NotNil(t, cmd.gotReq)
				assert.Equal(t, tc.userID, cmd.gotReq.UserID)
			} else {
				assert.Nil(t, cmd.gotReq)
			}

			env := decodeEnvelope[domain.CurrentUserProfile](t, rec.Body.Bytes())
			if tc.wantError != "" {
				assert.False(t, env.Success)
				assert.Equal(t, tc.wantError, env.Error)
				assert.Nil(t, env.Data)
				return
			}

			assert.True(t, env.Success)
			assert.Empty(t, env.Error)
			require.NotNil(t, env.Data)
			assert.Equal(t, profile, *env.Data)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestCurrentUserGet_ResponseShape(t *testing.T) {
	cmd := &stubProfileCmd{profile: domain.CurrentUserProfile{
		Profile: domain.Profile{ID: "user-1", Username: "alice"},
		CommendationStats: domain.CommendationStats{
			PopularPosts: []domain.PopularPost{},
		},
	}}

	req := testContextWithUserID("user-1")(httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	rec := httptest.NewRecorder()
	CurrentUserGet{GetProfileCmd: cmd}.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, key := range []string{
		`"success":true`,
		`"username":"alice"`,
		`"commendationStats"`,
		`"reports":{"received":0,"accepted":0}`,
		`"votes":{"upvotes":0,"downvotes":0,"net":0}`,
		`"blogPosts":0`,
		`"popularPosts":[]`,
	} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, `"error"`)
}
