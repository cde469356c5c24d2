package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanadages/adages-society/internal/datasources/memory"
	"github.com/americanadages/adages-society/internal/domain"
)

var testCreatedAt = time.Date(2024, 4, 27, 12, 0, 0, 0, time.UTC)

func testCommendationStatsConfig() CommendationStatsConfig {
	return CommendationStatsConfig{
		CommentVoteCap:       20,
		OtherVoteCap:         10,
		PopularPostsLimit:    10,
		MaxConcurrentQueries: 4,
	}
}

func testCtx() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newStatsCmd(store *memory.Store) *ComputeCommendationStats {
	return NewComputeCommendationStats(store, store, store, store, testCommendationStatsConfig())
}

func upvotes(category domain.ContentCategory, id string, n int) []memory.SeedVote {
	votes := make([]memory.SeedVote, 0, n)
	for i := 0; i < n; i++ {
		votes = append(votes, memory.SeedVote{VoterID: "voter", TargetType: category, TargetID: id, Value: 1})
	}
	return votes
}

func comment(id string, createdAt time.Time) memory.SeedItem {
	return memory.SeedItem{
		ID: id, Category: domain.CategoryComment, AuthorID: "u1", Text: "comment " + id, CreatedAt: createdAt,
	}
}

func popularIDs(posts []domain.PopularPost) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestComputeCommendationStats_NoContent(t *testing.T) {
	store := memory.New(memory.Seed{Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}}})

	stats, err := newStatsCmd(store).Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, domain.CommendationStats{PopularPosts: []domain.PopularPost{}}, stats)
}

func TestComputeCommendationStats_SingleComment(t *testing.T) {
	seed := memory.Seed{
		Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}},
		Items: []memory.SeedItem{comment("c1", testCreatedAt)},
		Votes: []memory.SeedVote{
			{VoterID: "v1", TargetType: domain.CategoryComment, TargetID: "c1", Value: 1},
			{VoterID: "v2", TargetType: domain.CategoryComment, TargetID: "c1", Value: 1},
			{VoterID: "v3", TargetType: domain.CategoryComment, TargetID: "c1", Value: -1},
		},
	}

	stats, err := newStatsCmd(memory.New(seed)).Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, domain.VoteTally{Upvotes: 2, Downvotes: 1, Net: 1}, stats.Votes)
	assert.Equal(t, domain.ReportCounts{}, stats.Reports)
	assert.Equal(t, 1, stats.Contributions.Comments)
	require.Len(t, stats.PopularPosts, 1)
	assert.Equal(t, "c1", stats.PopularPosts[0].ID)
	assert.Equal(t, 1, stats.PopularPosts[0].Score)
	assert.Equal(t, domain.CategoryComment, stats.PopularPosts[0].Type)
}

func TestComputeCommendationStats_TiesAreStable(t *testing.T) {
	seed := memory.Seed{
		Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}},
		Items: []memory.SeedItem{
			comment("tied-a", testCreatedAt),
			comment("tied-b", testCreatedAt),
			comment("low", testCreatedAt.Add(time.Hour)),
		},
	}
	seed.Votes = append(seed.Votes, upvotes(domain.CategoryComment, "tied-a", 5)...)
	seed.Votes = append(seed.Votes, upvotes(domain.CategoryComment, "tied-b", 5)...)
	seed.Votes = append(seed.Votes, upvotes(domain.CategoryComment, "low", 2)...)

	cmd := newStatsCmd(memory.New(seed))

	first, err := cmd.Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, first.PopularPosts, 3)
	assert.Equal(t, "low", first.PopularPosts[2].ID)
	assert.ElementsMatch(t, []string{"tied-a", "tied-b"}, popularIDs(first.PopularPosts[:2]))

	for i := 0; i < 10; i++ {
		again, err := cmd.Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeCommendationStats_HiddenCommentExcluded(t *testing.T) {
	hiddenAt := testCreatedAt.Add(time.Hour)
	hidden := comment("hidden", testCreatedAt)
	hidden.HiddenAt = &hiddenAt

	seed := memory.Seed{
		Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}},
		Items: []memory.SeedItem{hidden, comment("visible", testCreatedAt)},
	}
	seed.Votes = append(seed.Votes, upvotes(domain.CategoryComment, "hidden", 10)...)
	seed.Votes = append(seed.Votes, upvotes(domain.CategoryComment, "visible", 1)...)

	stats, err := newStatsCmd(memory.New(seed)).Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"visible"}, popularIDs(stats.PopularPosts))
	assert.Equal(t, 11, stats.Votes.Upvotes)
}

func TestComputeCommendationStats_SoftDeletedExcluded(t *testing.T) {
	deletedAt := testCreatedAt.Add(time.Hour)
	deleted := comment("deleted", testCreatedAt)
	deleted.DeletedAt = &deletedAt

	seed := memory.Seed{
		Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}},
		Items: []memory.SeedItem{deleted, comment("live", testCreatedAt)},
		Challenges: []memory.SeedChallenge{
			{ID: "ch1", ChallengerID: "u2", TargetType: domain.CategoryComment, TargetID: "deleted", Status: domain.ReportStatusAccepted},
			{ID: "ch2", ChallengerID: "u2", TargetType: domain.CategoryComment, TargetID: "live", Status: domain.ReportStatusRejected},
		},
	}
	seed.Votes = upvotes(domain.CategoryComment, "deleted", 3)

	stats, err := newStatsCmd(memory.New(seed)).Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Contributions.Comments)
	assert.Equal(t, []string{"live"}, popularIDs(stats.PopularPosts))
	assert.Equal(t, domain.ReportCounts{Received: 1, Accepted: 0}, stats.Reports)
	assert.Equal(t, domain.VoteTally{}, stats.Votes)
}

func TestComputeCommendationStats_ReportsAcrossCategories(t *testing.T) {
	seed := memory.Seed{
		Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}},
		Items: []memory.SeedItem{
			comment("shared-id", testCreatedAt),
			{ID: "shared-id", Category: domain.CategoryAdage, AuthorID: "u1", Text: "adage", CreatedAt: testCreatedAt},
			{ID: "b1", Category: domain.CategoryBlogPost, AuthorID: "u1", Text: "post", CreatedAt: testCreatedAt},
			{ID: "t1", Category: domain.CategoryForumThread, AuthorID: "u1", Text: "thread", CreatedAt: testCreatedAt},
		},
		Challenges: []memory.SeedChallenge{
			{ID: "ch1", TargetType: domain.CategoryComment, TargetID: "shared-id", Status: domain.ReportStatusAccepted},
			{ID: "ch2", TargetType: domain.CategoryAdage, TargetID: "shared-id", Status: domain.ReportStatusPending},
			{ID: "ch3", TargetType: domain.CategoryBlogPost, TargetID: "b1", Status: domain.ReportStatusAccepted},
			{ID: "ch4", TargetType: domain.CategoryForumThread, TargetID: "t1", Status: domain.ReportStatusAccepted},
		},
		Citations: []memory.SeedCitation{{ID: "cit1", SubmittedBy: "u1", AdageID: "shared-id"}},
	}

	stats, err := newStatsCmd(memory.New(seed)).Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReportCounts{Received: 3, Accepted: 2}, stats.Reports)
	assert.Equal(t, domain.Contributions{Citations: 1, Comments: 1, BlogPosts: 1, Adages: 1}, stats.Contributions)
	assert.Len(t, stats.PopularPosts, 4)
}

func TestComputeCommendationStats_CapsScoredItems(t *testing.T) {
	seed := memory.Seed{Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}}}
	for i := 0; i < 25; i++ {
		id := string(rune('a' + i))
		seed.Items = append(seed.Items, comment(id, testCreatedAt.Add(time.Duration(i)*time.Minute)))
		seed.Votes = append(seed.Votes, upvotes(domain.CategoryComment, id, 1)...)
	}

	stats, err := newStatsCmd(memory.New(seed)).Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 25, stats.Contributions.Comments)
	assert.Equal(t, 20, stats.Votes.Upvotes)
	require.Len(t, stats.PopularPosts, 10)
	assert.Equal(t, "y", stats.PopularPosts[0].ID)
}

// failingStore fails the configured categories and contribution kinds.
type failingStore struct {
	*memory.Store
	failCategories map[domain.ContentCategory]bool
	failKinds      map[domain.ContributionKind]bool
	failTally      bool
}

var errStore = errors.New("store unavailable")

func (s failingStore) ListAuthoredContent(
	ctx context.Context, userID string, category domain.ContentCategory,
) ([]domain.ContentItem, error) {
	if s.failCategories[category] {
		return nil, errStore
	}
	return s.Store.ListAuthoredContent(ctx, userID, category)
}

func (s failingStore) CountContributions(
	ctx context.Context, userID string, kind domain.ContributionKind,
) (int, error) {
	if s.failKinds[kind] {
		return 0, errStore
	}
	return s.Store.CountContributions(ctx, userID, kind)
}

func (s failingStore) TallyVotes(
	ctx context.Context, refs []domain.ContentRef,
) (map[domain.ContentRef]domain.VoteTally, error) {
	if s.failTally {
		return nil, errStore
	}
	return s.Store.TallyVotes(ctx, refs)
}

func TestComputeCommendationStats_PartialFailures(t *testing.T) {
	seed := memory.Seed{
		Users: []memory.SeedUser{{Profile: domain.Profile{ID: "u1"}}},
		Items: []memory.SeedItem{
			comment("c1", testCreatedAt),
			{ID: "a1", Category: domain.CategoryAdage, AuthorID: "u1", Text: "adage", CreatedAt: testCreatedAt},
		},
		Votes: append(upvotes(domain.CategoryComment, "c1", 2), upvotes(domain.CategoryAdage, "a1", 3)...),
	}

	cases := []struct {
		name          string
		store         failingStore
		expectedVotes domain.VoteTally
		expectedIDs   []string
		expected      domain.Contributions
	}{
		{
			name: "comment_listing_fails",
			store: failingStore{
				Store:          memory.New(seed),
				failCategories: map[domain.ContentCategory]bool{domain.CategoryComment: true},
			},
			expectedVotes: domain.VoteTally{Upvotes: 3, Net: 3},
			expectedIDs:   []string{"a1"},
			expected:      domain.Contributions{Comments: 1, Adages: 1},
		},
		{
			name: "contribution_count_fails",
			store: failingStore{
				Store:     memory.New(seed),
				failKinds: map[domain.ContributionKind]bool{domain.ContributionAdages: true},
			},
			expectedVotes: domain.VoteTally{Upvotes: 5, Net: 5},
			expectedIDs:   []string{"a1", "c1"},
			expected:      domain.Contributions{Comments: 1},
		},
		{
			name: "tally_fails",
			store: failingStore{
				Store:     memory.New(seed),
				failTally: true,
			},
			expectedVotes: domain.VoteTally{},
			expectedIDs:   []string{"c1", "a1"},
			expected:      domain.Contributions{Comments: 1, Adages: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := NewComputeCommendationStats(tc.store, tc.store, tc.store, tc.store, testCommendationStatsConfig())

			stats, err := cmd.Execute(testCtx(), ComputeCommendationStatsRequest{UserID: "u1"})
			require.NoError(t, err)
			assert.Equal(t, tc.expectedVotes, stats.Votes)
			assert.Equal(t, tc.expectedIDs, popularIDs(stats.PopularPosts))
			assert.Equal(t, tc.expected, stats.Contributions)
		})
	}
}

func TestComputeCommendationStats_Cancelled(t *testing.T) {
	store := memory.New(memory.DefaultSeed())
	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	_, err := newStatsCmd(store).Execute(ctx, ComputeCommendationStatsRequest{UserID: "u1"})
	require.ErrorIs(t, err, context.Canceled)
}
