package sqlstore

import (
	"fmt"

	"github.com/americanadages/adages-society/internal/domain"
)

// contentTable maps a content category onto its table.
type contentTable struct {
	name      string
	authorCol string
	textCol   string
	hideable  bool
}

var contentTables = map[domain.ContentCategory]contentTable{
	domain.CategoryComment:     {name: "comments", authorCol: "user_id", textCol: "content", hideable: true},
	domain.CategoryBlogPost:    {name: "blog_posts", authorCol: "author_id", textCol: "title"},
	domain.CategoryAdage:       {name: "adages", authorCol: "created_by", textCol: "adage"},
	domain.CategoryForumReply:  {name: "forum_replies", authorCol: "author_id", textCol: "content"},
	domain.CategoryForumThread: {name: "forum_threads", authorCol: "author_id", textCol: "title"},
}

func contentTableFor(category domain.ContentCategory) (contentTable, error) {
	t, ok := contentTables[category]
	if !ok {
		return contentTable{}, fmt.Errorf("unknown content category [%s]", category)
	}
	return t, nil
}

// ownedTable is a table whose rows are counted per owning user.
type ownedTable struct {
	name     string
	ownerCol string
}

var contributionTables = map[domain.ContributionKind]ownedTable{
	domain.ContributionCitations:  {name: "citations", ownerCol: "submitted_by"},
	domain.ContributionChallenges: {name: "challenges", ownerCol: "challenger_id"},
	domain.ContributionComments:   {name: "comments", ownerCol: "user_id"},
	domain.ContributionBlogPosts:  {name: "blog_posts", ownerCol: "author_id"},
	domain.ContributionAdages:     {name: "adages", ownerCol: "created_by"},
}
