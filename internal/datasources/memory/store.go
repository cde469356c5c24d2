package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

var _ datasources.ContentStore = (*Store)(nil)

// Store is a ContentStore held entirely in memory. It is used when no database is configured.
type Store struct {
	mu   sync.RWMutex
	seed Seed
}

func New(seed Seed) *Store {
	return &Store{seed: seed}
}

// Replace swaps the dataset atomically with respect to readers.
func (s *Store) Replace(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
}

func (s *Store) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.seed.Users {
		if u.ID == userID && u.DeletedAt == nil {
			return u.Profile, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("fetching profile [%s]: %w", userID, domain.ErrNotFound)
}

func (s *Store) CountProfileStats(ctx context.Context, userID string) (domain.ProfileStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProfileStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.ProfileStats
	for _, f := range s.seed.Friendships {
		if f.Accepted && (f.RequesterID == userID || f.AddresseeID == userID) {
			stats.Friends++
		}
	}
	for _, item := range s.seed.Items {
		if item.AuthorID != userID || item.DeletedAt != nil {
			continue
		}
		switch item.Category {
		case domain.CategoryForumThread:
			stats.ForumThreads++
		case domain.CategoryForumReply:
			stats.ForumReplies++
		}
	}
	return stats, nil
}

func (s *Store) ListAuthoredContent(
	ctx context.Context,
	userID string,
	category domain.ContentCategory,
) ([]domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []domain.ContentItem{}
	for _, item := range s.seed.Items {
		if item.AuthorID != userID || item.Category != category || item.DeletedAt != nil {
			continue
		}
		items = append(items, item.contentItem())
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	return items, nil
}

func (s *Store) ListReportsForTargets(
	ctx context.Context,
	category domain.ContentCategory,
	targetIDs []string,
) ([]domain.Report, error) {
	if len(targetIDs) == 0 {
		return []domain.Report{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := []domain.Report{}
	for _, c := range s.seed.Challenges {
		if c.TargetType != category || c.DeletedAt != nil || !slices.Contains(targetIDs, c.TargetID) {
			continue
		}
		reports = append(reports, domain.Report{
			ID:         c.ID,
			TargetType: c.TargetType,
			TargetID:   c.TargetID,
			Status:     c.Status,
		})
	}
	return reports, nil
}

func (s *Store) TallyVotes(
	ctx context.Context,
	refs []domain.ContentRef,
) (map[domain.ContentRef]domain.VoteTally, error) {
	tallies := make(map[domain.ContentRef]domain.VoteTally)
	if len(refs) == 0 {
		return tallies, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[domain.ContentRef]struct{}, len(refs))
	for _, ref := range refs {
		wanted[ref] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	votes := make(map[domain.ContentRef][]domain.Vote)
	for _, v := range s.seed.Votes {
		ref := domain.ContentRef{Category: v.TargetType, ID: v.TargetID}
		if _, ok := wanted[ref]; !ok {
			continue
		}
		votes[ref] = append(votes[ref], domain.Vote{TargetType: v.TargetType, TargetID: v.TargetID, Value: v.Value})
	}

	for ref, list := range votes {
		tallies[ref] = domain.ReduceVotes(list)
	}
	return tallies, nil
}

func (s *Store) CountContributions(ctx context.Context, userID string, kind domain.ContributionKind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	switch kind {
	case domain.ContributionCitations:
		for _, c := range s.seed.Citations {
			if c.SubmittedBy == userID && c.DeletedAt == nil {
				count++
			}
		}
	case domain.ContributionChallenges:
		for _, c := range s.seed.Challenges {
			if c.ChallengerID == userID && c.DeletedAt == nil {
				count++
			}
		}
	case domain.ContributionComments:
		count = s.countItems(userID, domain.CategoryComment)
	case domain.ContributionBlogPosts:
		count = s.countItems(userID, domain.CategoryBlogPost)
	case domain.ContributionAdages:
		count = s.countItems(userID, domain.CategoryAdage)
	default:
		return 0, fmt.Errorf("unknown contribution kind [%s]", kind)
	}
	return count, nil
}

func (s *Store) countItems(userID string, category domain.ContentCategory) int {
	count := 0
	for _, item := range s.seed.Items {
		if item.AuthorID == userID && item.Category == category && item.DeletedAt == nil {
			count++
		}
	}
	return count
}

func (s *Store) ListLatestAdages(ctx context.Context, limit int) ([]domain.Adage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	authors := make(map[string]string, len(s.seed.Users))
	for _, u := range s.seed.Users {
		authors[u.ID] = u.DisplayName
	}

	adages := []domain.Adage{}
	for _, item := range s.seed.Items {
		if item.Category != domain.CategoryAdage || item.DeletedAt != nil || item.HiddenAt != nil {
			continue
		}
		adages = append(adages, domain.Adage{
			ID:         item.ID,
			Text:       item.Text,
			Definition: item.Definition,
			AuthorName: authors[item.AuthorID],
			CreatedAt:  item.CreatedAt,
		})
	}

	sort.SliceStable(adages, func(i, j int) bool {
		return adages[i].CreatedAt.After(adages[j].CreatedAt)
	})
	if limit >= 0 && len(adages) > limit {
		adages = adages[:limit]
	}
	return adages, nil
}

func (s *Store) CheckHealth(ctx context.Context) error {
	return ctx.Err()
}

func (i SeedItem) contentItem() domain.ContentItem {
	return domain.ContentItem{
		ID:        i.ID,
		Category:  i.Category,
		AuthorID:  i.AuthorID,
		Text:      i.Text,
		CreatedAt: i.CreatedAt,
		HiddenAt:  i.HiddenAt,
	}
}
