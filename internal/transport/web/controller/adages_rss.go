package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

const adagesFeedSize = 50

type AdagesRSS struct {
	FeedHostname string
	FeedPath     string
	Lister       datasources.LatestAdageLister
	CacheMaxAge  time.Duration
}

func (c AdagesRSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	adages, err := c.Lister.ListLatestAdages(ctx, adagesFeedSize)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch adages for feed", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	feed := &feeds.Feed{
		Title:       "American Adages Society",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Newest adages added to the society's collection",
		Created:     time.Now(),
	}

	for _, a := range adages {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          a.ID,
			IsPermaLink: "false",
			Title:       a.Text,
			Link:        &feeds.Link{Href: c.FeedHostname + "/adages/" + a.ID},
			Description: a.Definition,
			Author:      &feeds.Author{Name: a.AuthorName},
			Created:     a.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}
