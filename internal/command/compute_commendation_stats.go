package command

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

// CommendationStatsConfig bounds the work done per request.
type CommendationStatsConfig struct {
	// CommentVoteCap is how many of the newest comments are scored.
	CommentVoteCap int

	// OtherVoteCap is how many of the newest items of every other category are scored.
	OtherVoteCap int

	// PopularPostsLimit is the length of the popular posts list.
	PopularPostsLimit int

	// MaxConcurrentQueries limits in-flight store calls per phase. Zero means unlimited.
	MaxConcurrentQueries int
}

// ComputeCommendationStatsRequest is the request for the ComputeCommendationStats command.
type ComputeCommendationStatsRequest struct {
	UserID string
}

// ComputeCommendationStats aggregates the votes, challenges and contributions of a user.
//
// Store failures for a single category or counter are logged and replaced with an
// empty result so one failing table does not blank the whole profile. Only context
// cancellation fails the command.
type ComputeCommendationStats struct {
	ContentLister       datasources.AuthoredContentLister
	ReportLister        datasources.ReportLister
	VoteTallier         datasources.VoteTallier
	ContributionCounter datasources.ContributionCounter
	Config              CommendationStatsConfig
}

// NewComputeCommendationStats creates a properly initialized ComputeCommendationStats command.
func NewComputeCommendationStats(
	contentLister datasources.AuthoredContentLister,
	reportLister datasources.ReportLister,
	voteTallier datasources.VoteTallier,
	contributionCounter datasources.ContributionCounter,
	config CommendationStatsConfig,
) *ComputeCommendationStats {
	return &ComputeCommendationStats{
		ContentLister:       contentLister,
		ReportLister:        reportLister,
		VoteTallier:         voteTallier,
		ContributionCounter: contributionCounter,
		Config:              config,
	}
}

// Execute computes the commendation stats for req.UserID.
func (c *ComputeCommendationStats) Execute(
	ctx context.Context, req ComputeCommendationStatsRequest,
) (domain.CommendationStats, error) {
	logger := domain.LoggerFromContext(ctx).With("user_id", req.UserID)
	ctx = domain.ContextWithLogger(ctx, logger)

	authored, contributions, err := c.locateContent(ctx, req.UserID)
	if err != nil {
		return domain.CommendationStats{}, fmt.Errorf("locating content: %w", err)
	}

	reports, tallies, err := c.fetchEngagement(ctx, authored)
	if err != nil {
		return domain.CommendationStats{}, fmt.Errorf("fetching engagement: %w", err)
	}

	stats := domain.CommendationStats{
		Reports:       domain.CountReports(reports),
		Votes:         domain.SumTallies(tallies),
		Contributions: contributions,
		PopularPosts:  domain.RankPopularPosts(c.scoreItems(authored, tallies), c.Config.PopularPostsLimit),
	}

	logger.DebugContext(ctx, "computed commendation stats",
		"reports_received", stats.Reports.Received,
		"net_votes", stats.Votes.Net,
		"popular_posts", len(stats.PopularPosts))

	return stats, nil
}

// locateContent lists the user's items in every category and counts their contributions.
func (c *ComputeCommendationStats) locateContent(
	ctx context.Context, userID string,
) (domain.AuthoredContent, domain.Contributions, error) {
	grp, grpCtx := c.newGroup(ctx)

	items := make([][]domain.ContentItem, len(domain.AllContentCategories))
	for i, category := range domain.AllContentCategories {
		i, category := i, category
		grp.Go(func() error {
			list, err := c.ContentLister.ListAuthoredContent(grpCtx, userID, category)
			if err != nil {
				return bestEffort(grpCtx, "list authored "+string(category), err)
			}
			items[i] = list
			return nil
		})
	}

	counts := make([]int, len(domain.AllContributionKinds))
	for i, kind := range domain.AllContributionKinds {
		i, kind := i, kind
		grp.Go(func() error {
			count, err := c.ContributionCounter.CountContributions(grpCtx, userID, kind)
			if err != nil {
				return bestEffort(grpCtx, "count "+string(kind), err)
			}
			counts[i] = count
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, domain.Contributions{}, err
	}

	authored := make(domain.AuthoredContent, len(domain.AllContentCategories))
	for i, category := range domain.AllContentCategories {
		authored[category] = items[i]
	}

	var contributions domain.Contributions
	for i, kind := range domain.AllContributionKinds {
		contributions.Set(kind, counts[i])
	}

	return authored, contributions, nil
}

// fetchEngagement loads challenges against every reportable item and vote tallies
// for the capped prefix of each category.
func (c *ComputeCommendationStats) fetchEngagement(
	ctx context.Context, authored domain.AuthoredContent,
) (map[domain.ContentCategory][]domain.Report, map[domain.ContentRef]domain.VoteTally, error) {
	grp, grpCtx := c.newGroup(ctx)

	reports := make([][]domain.Report, len(domain.ReportableCategories))
	for i, category := range domain.ReportableCategories {
		i, category := i, category
		ids := authored.IDs(category)
		if len(ids) == 0 {
			continue
		}
		grp.Go(func() error {
			list, err := c.ReportLister.ListReportsForTargets(grpCtx, category, ids)
			if err != nil {
				return bestEffort(grpCtx, "list "+string(category)+" reports", err)
			}
			reports[i] = list
			return nil
		})
	}

	tallies := make([]map[domain.ContentRef]domain.VoteTally, len(domain.AllContentCategories))
	for i, category := range domain.AllContentCategories {
		i, category := i, category
		refs := c.scoredRefs(authored, category)
		if len(refs) == 0 {
			continue
		}
		grp.Go(func() error {
			t, err := c.VoteTallier.TallyVotes(grpCtx, refs)
			if err != nil {
				return bestEffort(grpCtx, "tally "+string(category)+" votes", err)
			}
			tallies[i] = t
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	reportsByCategory := make(map[domain.ContentCategory][]domain.Report, len(reports))
	for i, category := range domain.ReportableCategories {
		if len(reports[i]) > 0 {
			reportsByCategory[category] = reports[i]
		}
	}

	merged := make(map[domain.ContentRef]domain.VoteTally)
	for _, t := range tallies {
		for ref, tally := range t {
			merged[ref] = tally
		}
	}

	return reportsByCategory, merged, nil
}

// scoreItems pairs the capped items with their net score. Items without votes score zero.
func (c *ComputeCommendationStats) scoreItems(
	authored domain.AuthoredContent, tallies map[domain.ContentRef]domain.VoteTally,
) []domain.ScoredItem {
	var scored []domain.ScoredItem
	for _, category := range domain.AllContentCategories {
		for _, item := range c.capped(authored, category) {
			scored = append(scored, domain.ScoredItem{
				Item:  item,
				Score: tallies[item.Ref()].Net,
			})
		}
	}
	return scored
}

func (c *ComputeCommendationStats) scoredRefs(
	authored domain.AuthoredContent, category domain.ContentCategory,
) []domain.ContentRef {
	items := c.capped(authored, category)
	refs := make([]domain.ContentRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.Ref())
	}
	return refs
}

func (c *ComputeCommendationStats) capped(
	authored domain.AuthoredContent, category domain.ContentCategory,
) []domain.ContentItem {
	limit := c.Config.OtherVoteCap
	if category == domain.CategoryComment {
		limit = c.Config.CommentVoteCap
	}

	items := authored[category]
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func (c *ComputeCommendationStats) newGroup(ctx context.Context) (*errgroup.Group, context.Context) {
	grp, grpCtx := errgroup.WithContext(ctx)
	if c.Config.MaxConcurrentQueries > 0 {
		grp.SetLimit(c.Config.MaxConcurrentQueries)
	}
	return grp, grpCtx
}

// bestEffort swallows a store error unless the request itself has been cancelled.
func bestEffort(ctx context.Context, fetch string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	logger := domain.LoggerFromContext(ctx)
	logger.WarnContext(ctx, "store call failed, using empty result", "fetch", fetch, "error", err)
	return nil
}
