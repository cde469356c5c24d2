package domain

import (
	"sort"
	"time"
	"unicode/utf8"
)

const popularPostTitleMaxRunes = 100

// ScoredItem is a content item paired with its net vote score.
type ScoredItem struct {
	Item  ContentItem
	Score int
}

// PopularPost is an entry in a user's popular posts list.
type PopularPost struct {
	ID        string          `json:"id"`
	Type      ContentCategory `json:"type"`
	Title     string          `json:"title"`
	Score     int             `json:"score"`
	CreatedAt time.Time       `json:"created_at"`
}

// RankPopularPosts orders items by score, then recency, and returns at most limit of them.
// Hidden items are dropped. Remaining ties are broken by category and id so the
// output does not depend on input order.
func RankPopularPosts(items []ScoredItem, limit int) []PopularPost {
	visible := make([]ScoredItem, 0, len(items))
	for _, si := range items {
		if si.Item.Hidden() {
			continue
		}
		visible = append(visible, si)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Item.CreatedAt.Equal(b.Item.CreatedAt) {
			return a.Item.CreatedAt.After(b.Item.CreatedAt)
		}
		if a.Item.Category != b.Item.Category {
			return a.Item.Category.order() < b.Item.Category.order()
		}
		return a.Item.ID < b.Item.ID
	})

	if limit >= 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	posts := make([]PopularPost, 0, len(visible))
	for _, si := range visible {
		posts = append(posts, PopularPost{
			ID:        si.Item.ID,
			Type:      si.Item.Category,
			Title:     truncateRunes(si.Item.Text, popularPostTitleMaxRunes),
			Score:     si.Score,
			CreatedAt: si.Item.CreatedAt,
		})
	}
	return posts
}

func truncateRunes(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}
