package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-side queries. Using a centralized singleflight.Group
// ensures only one query runs for a given key while other callers wait for
// the result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by result limit.
var LeaderboardGroup singleflight.Group

// StatsGroup deduplicates profile and combo stat lookups keyed by
// email / combo key.
var StatsGroup singleflight.Group
