package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when the requested row does not exist or is soft-deleted.
var ErrNotFound = errors.New("not found")

// ContentCategory identifies the kind of user-authored content an item belongs to.
// The values match the target_type column used by votes and challenges.
type ContentCategory string

const (
	CategoryComment     ContentCategory = "comment"
	CategoryBlogPost    ContentCategory = "blog_post"
	CategoryAdage       ContentCategory = "adage"
	CategoryForumReply  ContentCategory = "forum_reply"
	CategoryForumThread ContentCategory = "forum_thread"
)

// AllContentCategories lists every category in the fixed order used for tie-breaking.
var AllContentCategories = []ContentCategory{
	CategoryComment,
	CategoryBlogPost,
	CategoryAdage,
	CategoryForumReply,
	CategoryForumThread,
}

// ReportableCategories are the categories that challenges are counted against.
var ReportableCategories = []ContentCategory{
	CategoryComment,
	CategoryBlogPost,
	CategoryAdage,
}

func (c ContentCategory) Valid() bool {
	return c.order() >= 0
}

func (c ContentCategory) order() int {
	for i, known := range AllContentCategories {
		if known == c {
			return i
		}
	}
	return -1
}

// ContentRef identifies a content item within its category. IDs are only unique per category.
type ContentRef struct {
	Category ContentCategory
	ID       string
}

// ContentItem is a non-deleted item authored by a user.
type ContentItem struct {
	ID        string
	Category  ContentCategory
	AuthorID  string
	Text      string
	CreatedAt time.Time
	HiddenAt  *time.Time
}

func (i ContentItem) Ref() ContentRef {
	return ContentRef{Category: i.Category, ID: i.ID}
}

// Hidden reports whether a moderator has hidden the item.
func (i ContentItem) Hidden() bool {
	return i.HiddenAt != nil
}

// AuthoredContent holds a user's items grouped by category.
type AuthoredContent map[ContentCategory][]ContentItem

// IDs returns the ids of the user's items in the given category, in store order.
func (a AuthoredContent) IDs(category ContentCategory) []string {
	items := a[category]
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Vote is a single up or down vote cast on a content item.
type Vote struct {
	TargetType ContentCategory
	TargetID   string
	Value      int
}

// ReportStatus is the moderation state of a challenge.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusAccepted ReportStatus = "accepted"
	ReportStatusRejected ReportStatus = "rejected"
)

// Report is a challenge raised against a content item.
type Report struct {
	ID         string
	TargetType ContentCategory
	TargetID   string
	Status     ReportStatus
}
