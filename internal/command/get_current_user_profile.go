package command

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

// GetCurrentUserProfileRequest is the request for the GetCurrentUserProfile command.
type GetCurrentUserProfileRequest struct {
	UserID string
}

// GetCurrentUserProfile assembles the profile page payload for the signed-in user.
type GetCurrentUserProfile struct {
	ProfileFetcher    datasources.ProfileFetcher
	StatsCounter      datasources.ProfileStatsCounter
	CommendationStats Command[ComputeCommendationStatsRequest, domain.CommendationStats]
}

// NewGetCurrentUserProfile creates a properly initialized GetCurrentUserProfile command.
func NewGetCurrentUserProfile(
	profileFetcher datasources.ProfileFetcher,
	statsCounter datasources.ProfileStatsCounter,
	commendationStats Command[ComputeCommendationStatsRequest, domain.CommendationStats],
) *GetCurrentUserProfile {
	return &GetCurrentUserProfile{
		ProfileFetcher:    profileFetcher,
		StatsCounter:      statsCounter,
		CommendationStats: commendationStats,
	}
}

// Execute returns domain.ErrNotFound (wrapped) when the user has no live profile.
func (c *GetCurrentUserProfile) Execute(
	ctx context.Context, req GetCurrentUserProfileRequest,
) (domain.CurrentUserProfile, error) {
	profile, err := c.ProfileFetcher.FetchProfile(ctx, req.UserID)
	if err != nil {
		return domain.CurrentUserProfile{}, fmt.Errorf("fetching profile: %w", err)
	}

	result := domain.CurrentUserProfile{Profile: profile}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		stats, err := c.StatsCounter.CountProfileStats(grpCtx, req.UserID)
		if err != nil {
			return bestEffort(grpCtx, "count profile stats", err)
		}
		result.Stats = stats
		return nil
	})
	grp.Go(func() error {
		stats, err := c.CommendationStats.Execute(grpCtx, ComputeCommendationStatsRequest{UserID: req.UserID})
		if err != nil {
			return fmt.Errorf("computing commendation stats: %w", err)
		}
		result.CommendationStats = stats
		return nil
	})

	if err := grp.Wait(); err != nil {
		return domain.CurrentUserProfile{}, err
	}

	return result, nil
}
