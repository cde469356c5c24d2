package domain

import "time"

// Adage is a published adage as listed in feeds.
type Adage struct {
	ID         string
	Text       string
	Definition string
	AuthorName string
	CreatedAt  time.Time
}
