package domain

// ReportCounts summarises the challenges received by a user's content.
type ReportCounts struct {
	Received int `json:"received"`
	Accepted int `json:"accepted"`
}

// Contributions are direct counts of rows a user authored or submitted.
type Contributions struct {
	Citations  int `json:"citations"`
	Challenges int `json:"challenges"`
	Comments   int `json:"comments"`
	BlogPosts  int `json:"blogPosts"`
	Adages     int `json:"adages"`
}

// CommendationStats is the aggregated standing of a user in the community.
type CommendationStats struct {
	Reports       ReportCounts  `json:"reports"`
	Votes         VoteTally     `json:"votes"`
	Contributions Contributions `json:"contributions"`
	PopularPosts  []PopularPost `json:"popularPosts"`
}

// CountReports flattens per-category report lists and counts received and accepted reports.
// Reports are keyed by category and id, so the same report never counts twice.
func CountReports(reports map[ContentCategory][]Report) ReportCounts {
	type key struct {
		category ContentCategory
		id       string
	}

	seen := make(map[key]struct{})
	var counts ReportCounts
	for category, list := range reports {
		for _, r := range list {
			if r.ID != "" {
				k := key{category: category, id: r.ID}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
			}
			counts.Received++
			if r.Status == ReportStatusAccepted {
				counts.Accepted++
			}
		}
	}
	return counts
}

// ContributionKind names a table whose rows count towards a user's contributions.
type ContributionKind string

const (
	ContributionCitations  ContributionKind = "citations"
	ContributionChallenges ContributionKind = "challenges"
	ContributionComments   ContributionKind = "comments"
	ContributionBlogPosts  ContributionKind = "blog_posts"
	ContributionAdages     ContributionKind = "adages"
)

var AllContributionKinds = []ContributionKind{
	ContributionCitations,
	ContributionChallenges,
	ContributionComments,
	ContributionBlogPosts,
	ContributionAdages,
}

// Set stores a count for the given kind. Unknown kinds are ignored.
func (c *Contributions) Set(kind ContributionKind, count int) {
	switch kind {
	case ContributionCitations:
		c.Citations = count
	case ContributionChallenges:
		c.Challenges = count
	case ContributionComments:
		c.Comments = count
	case ContributionBlogPosts:
		c.BlogPosts = count
	case ContributionAdages:
		c.Adages = count
	}
}
