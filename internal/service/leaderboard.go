package service

import (
	"context"
	"sync/atomic"
	"time"

	"skill-quest/internal/cache"
	"skill-quest/internal/config"
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"

	"golang.org/x/sync/singleflight"
)

// Leaderboard serves the top users from cache, coalescing concurrent fills. One
// instance is shared by every service that changes scores.
type Leaderboard struct {
	repo  domain.UserRepository
	cache *jsonCache
	group singleflight.Group
	// gen counts invalidations; a load that overlaps one drops what it cached.
	gen atomic.Uint64
}

// NewLeaderboard creates a Leaderboard. cache may be nil.
func NewLeaderboard(repo domain.UserRepository, c domain.Cache, appConfig *config.Config) *Leaderboard {
	ttl := appConfig.ParseTTLStringOrDefault(appConfig.CacheTTLs.Leaderboard, time.Minute)
	return &Leaderboard{repo: repo, cache: newJSONCache(c, "leaderboard", ttl)}
}

func (l *Leaderboard) get(ctx context.Context) ([]dto.UserResponse, error) {
	var cached []dto.UserResponse
	if l.cache.get(ctx, cache.LeaderboardKey(), &cached) {
		return cached, nil
	}

	v, err, _ := l.group.Do(cache.LeaderboardKey(), func() (interface{}, error) {
		return l.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.UserResponse), nil
}

// load reads the top users from the store and refreshes the cache entry.
func (l *Leaderboard) load(ctx context.Context) ([]dto.UserResponse, error) {
	gen := l.gen.Load()
	users, err := l.repo.GetTopUsersByScore(ctx, domain.LeaderboardSize)
	if err != nil {
		return nil, domain.NewInternalError("failed to load leaderboard", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *dto.NewUserResponse(u))
	}
	l.cache.set(ctx, cache.LeaderboardKey(), out)
	if l.gen.Load() != gen {
		// A score changed while reading; the entry may predate it.
		l.cache.invalidate(ctx, cache.LeaderboardKey())
	}
	return out, nil
}

// invalidate drops the cached entry after a score change. Safe on a nil receiver.
func (l *Leaderboard) invalidate(ctx context.Context) {
	if l == nil {
		return
	}
	l.gen.Add(1)
	l.cache.invalidate(ctx, cache.LeaderboardKey())
}
