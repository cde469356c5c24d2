package app

import "github.com/americanadages/adages-society/internal/command"

// DefaultCommendationStatsConfig returns the default config for the commendation stats aggregator.
func DefaultCommendationStatsConfig() command.CommendationStatsConfig {
	return command.CommendationStatsConfig{
		CommentVoteCap:       20,
		OtherVoteCap:         10,
		PopularPostsLimit:    10,
		MaxConcurrentQueries: 8,
	}
}
