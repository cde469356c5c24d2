package datasources

import (
	"context"

	"github.com/americanadages/adages-society/internal/domain"
)

// ContentStore combines every read capability the service needs from its backing store.
type ContentStore interface {
	ProfileFetcher
	ProfileStatsCounter
	AuthoredContentLister
	ReportLister
	VoteTallier
	ContributionCounter
	LatestAdageLister
	HealthChecker
}

type ProfileFetcher interface {
	// FetchProfile returns domain.ErrNotFound when the user has no live profile row.
	FetchProfile(ctx context.Context, userID string) (domain.Profile, error)
}

type ProfileStatsCounter interface {
	CountProfileStats(ctx context.Context, userID string) (domain.ProfileStats, error)
}

type AuthoredContentLister interface {
	// ListAuthoredContent returns the user's non-deleted items in one category, newest first.
	ListAuthoredContent(
		ctx context.Context,
		userID string,
		category domain.ContentCategory,
	) ([]domain.ContentItem, error)
}

type ReportLister interface {
	// ListReportsForTargets returns challenges raised against the given items of one category.
	ListReportsForTargets(
		ctx context.Context,
		category domain.ContentCategory,
		targetIDs []string,
	) ([]domain.Report, error)
}

type VoteTallier interface {
	// TallyVotes reduces the votes on each referenced item. Items without votes are absent.
	TallyVotes(ctx context.Context, refs []domain.ContentRef) (map[domain.ContentRef]domain.VoteTally, error)
}

type ContributionCounter interface {
	// CountContributions counts the user's non-deleted rows of one contribution kind.
	CountContributions(ctx context.Context, userID string, kind domain.ContributionKind) (int, error)
}

type LatestAdageLister interface {
	ListLatestAdages(ctx context.Context, limit int) ([]domain.Adage, error)
}

type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
