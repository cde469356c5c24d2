package domain

import "time"

// Profile is the public and private profile data of a user.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileStats are the social counters shown on the profile page.
type ProfileStats struct {
	Friends      int `json:"friends"`
	ForumThreads int `json:"forumThreads"`
	ForumReplies int `json:"forumReplies"`
}

// CurrentUserProfile is the payload of the current-user endpoint.
type CurrentUserProfile struct {
	Profile
	Stats             ProfileStats      `json:"stats"`
	CommendationStats CommendationStats `json:"commendationStats"`
}
