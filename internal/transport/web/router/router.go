package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/americanadages/adages-society/internal/command"
	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
	"github.com/americanadages/adages-society/internal/transport/web/controller"
)

func MakeRouter(
	store datasources.ContentStore,
	getProfileCmd command.Command[command.GetCurrentUserProfileRequest, domain.CurrentUserProfile],
	rssFeedBaseURL string,
	rssCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	r.Handle("/api/users/me", requireAuthMiddleware(controller.CurrentUserGet{
		GetProfileCmd: getProfileCmd,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/api/health", controller.Health{
		Checker: store,
	}).Methods(http.MethodGet, http.MethodOptions)

	adagesFeed := controller.AdagesRSS{
		FeedHostname: rssFeedBaseURL,
		FeedPath:     "/api/adages/rss",
		Lister:       store,
		CacheMaxAge:  rssCacheMaxAge,
	}
	r.Handle(adagesFeed.FeedPath, adagesFeed).Methods(http.MethodGet, http.MethodOptions)

	return r, nil
}
