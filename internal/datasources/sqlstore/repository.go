package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

var _ datasources.ContentStore = (*Repository)(nil)

type Repository struct {
	db     *sql.DB
	flavor sqlbuilder.Flavor
}

func New(db *sql.DB, flavor sqlbuilder.Flavor) *Repository {
	return &Repository{db: db, flavor: flavor}
}

// validID reports whether id can be compared against the UUID key columns.
// Non-UUID ids, such as third-party subjects, cannot match any row.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func (r *Repository) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if !validID(userID) {
		return domain.Profile{}, fmt.Errorf("fetching profile [%s]: %w", userID, domain.ErrNotFound)
	}

	sb := r.flavor.NewSelectBuilder()
	sb.Select("id", "username", "display_name", "email", "bio", "avatar_url", "role", "created_at")
	sb.From("users")
	sb.Where(sb.Equal("id", userID), sb.IsNull("deleted_at"))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var (
		p                           domain.Profile
		displayName, bio, avatarURL sql.NullString
	)
	err := row.Scan(&p.ID, &p.Username, &displayName, &p.Email, &bio, &avatarURL, &p.Role, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("fetching profile [%s]: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}

	p.DisplayName = displayName.String
	p.Bio = bio.String
	p.AvatarURL = avatarURL.String
	return p, nil
}

func (r *Repository) CountProfileStats(ctx context.Context, userID string) (domain.ProfileStats, error) {
	if !validID(userID) {
		return domain.ProfileStats{}, nil
	}

	friends := r.flavor.NewSelectBuilder()
	friends.Select("COUNT(*)")
	friends.From("friendships")
	friends.Where(
		friends.Equal("status", "accepted"),
		friends.Or(friends.Equal("requester_id", userID), friends.Equal("addressee_id", userID)),
	)

	var stats domain.ProfileStats
	var err error
	if stats.Friends, err = r.count(ctx, friends); err != nil {
		return domain.ProfileStats{}, fmt.Errorf("counting friends: %w", err)
	}
	if stats.ForumThreads, err = r.countOwned(ctx, "forum_threads", "author_id", userID); err != nil {
		return domain.ProfileStats{}, fmt.Errorf("counting forum threads: %w", err)
	}
	if stats.ForumReplies, err = r.countOwned(ctx, "forum_replies", "author_id", userID); err != nil {
		return domain.ProfileStats{}, fmt.Errorf("counting forum replies: %w", err)
	}
	return stats, nil
}

func (r *Repository) ListAuthoredContent(
	ctx context.Context,
	userID string,
	category domain.ContentCategory,
) ([]domain.ContentItem, error) {
	table, err := contentTableFor(category)
	if err != nil {
		return nil, err
	}
	if !validID(userID) {
		return []domain.ContentItem{}, nil
	}

	sb := r.flavor.NewSelectBuilder()
	cols := []string{"id", table.textCol, "created_at"}
	if table.hideable {
		cols = append(cols, "hidden_at")
	}
	sb.Select(cols...)
	sb.From(table.name)
	sb.Where(sb.Equal(table.authorCol, userID), sb.IsNull("deleted_at"))
	sb.OrderBy("created_at DESC", "id")

	items := []domain.ContentItem{}
	err = r.queryRows(ctx, sb, func(rows *sql.Rows) error {
		item := domain.ContentItem{Category: category, AuthorID: userID}
		var hiddenAt sql.NullTime
		dest := []interface{}{&item.ID, &item.Text, &item.CreatedAt}
		if table.hideable {
			dest = append(dest, &hiddenAt)
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		if hiddenAt.Valid {
			item.HiddenAt = &hiddenAt.Time
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table.name, err)
	}

	return items, nil
}

func (r *Repository) ListReportsForTargets(
	ctx context.Context,
	category domain.ContentCategory,
	targetIDs []string,
) ([]domain.Report, error) {
	if len(targetIDs) == 0 {
		return []domain.Report{}, nil
	}

	sb := r.flavor.NewSelectBuilder()
	sb.Select("id", "target_id", "status")
	sb.From("challenges")
	sb.Where(
		sb.Equal("target_type", string(category)),
		sb.In("target_id", toArgs(targetIDs)...),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("id")

	reports := []domain.Report{}
	err := r.queryRows(ctx, sb, func(rows *sql.Rows) error {
		report := domain.Report{TargetType: category}
		var status string
		if err := rows.Scan(&report.ID, &report.TargetID, &status); err != nil {
			return err
		}
		report.Status = domain.ReportStatus(status)
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s challenges: %w", category, err)
	}

	return reports, nil
}

// TallyVotes aggregates votes for all referenced items in a single grouped query.
func (r *Repository) TallyVotes(
	ctx context.Context,
	refs []domain.ContentRef,
) (map[domain.ContentRef]domain.VoteTally, error) {
	tallies := make(map[domain.ContentRef]domain.VoteTally)
	if len(refs) == 0 {
		return tallies, nil
	}

	sb := r.flavor.NewSelectBuilder()
	sb.Select(
		"target_type",
		"target_id",
		"SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END)",
		"SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END)",
	)
	sb.From("votes")
	sb.Where(buildRefConditions(sb, refs))
	sb.GroupBy("target_type", "target_id")

	err := r.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var (
			category, id        string
			upvotes, downvotes int64
		)
		if err := rows.Scan(&category, &id, &upvotes, &downvotes); err != nil {
			return err
		}
		ref := domain.ContentRef{Category: domain.ContentCategory(category), ID: id}
		tallies[ref] = domain.VoteTally{
			Upvotes:   int(upvotes),
			Downvotes: int(downvotes),
			Net:       int(upvotes - downvotes),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tallying votes: %w", err)
	}

	return tallies, nil
}

// buildRefConditions groups refs by category into (target_type = ? AND target_id IN (...)) clauses.
func buildRefConditions(sb *sqlbuilder.SelectBuilder, refs []domain.ContentRef) string {
	byCategory := make(map[domain.ContentCategory][]string)
	for _, ref := range refs {
		byCategory[ref.Category] = append(byCategory[ref.Category], ref.ID)
	}

	var conds []string
	for _, category := range domain.AllContentCategories {
		ids, ok := byCategory[category]
		if !ok {
			continue
		}
		conds = append(conds, sb.And(
			sb.Equal("target_type", string(category)),
			sb.In("target_id", toArgs(ids)...),
		))
	}
	return sb.Or(conds...)
}

func (r *Repository) CountContributions(
	ctx context.Context,
	userID string,
	kind domain.ContributionKind,
) (int, error) {
	table, ok := contributionTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown contribution kind [%s]", kind)
	}
	if !validID(userID) {
		return 0, nil
	}

	count, err := r.countOwned(ctx, table.name, table.ownerCol, userID)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", table.name, err)
	}
	return count, nil
}

func (r *Repository) ListLatestAdages(ctx context.Context, limit int) ([]domain.Adage, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("a.id", "a.adage", "a.definition", "u.display_name", "a.created_at")
	sb.From(sb.As("adages", "a"))
	sb.JoinWithOption(sqlbuilder.LeftJoin, sb.As("users", "u"), "u.id = a.created_by")
	sb.Where(sb.IsNull("a.deleted_at"))
	sb.OrderBy("a.created_at DESC", "a.id")
	sb.Limit(limit)

	adages := []domain.Adage{}
	err := r.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var (
			a                      domain.Adage
			definition, authorName sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Text, &definition, &authorName, &a.CreatedAt); err != nil {
			return err
		}
		a.Definition = definition.String
		a.AuthorName = authorName.String
		adages = append(adages, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing latest adages: %w", err)
	}

	return adages, nil
}

func (r *Repository) CheckHealth(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) countOwned(ctx context.Context, table, ownerCol, userID string) (int, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(table)
	sb.Where(sb.Equal(ownerCol, userID), sb.IsNull("deleted_at"))
	return r.count(ctx, sb)
}

func (r *Repository) count(ctx context.Context, sb *sqlbuilder.SelectBuilder) (int, error) {
	query, args := sb.Build()

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) queryRows(
	ctx context.Context,
	sb *sqlbuilder.SelectBuilder,
	scan func(rows *sql.Rows) error,
) error {
	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

func toArgs(values []string) []interface{} {
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}
	return args
}
