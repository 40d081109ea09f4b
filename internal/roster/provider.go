package roster

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/oakford/clubstats/internal/cache"
	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/store"
	"github.com/oakford/clubstats/internal/store/repository"
)

const (
	cacheKey = "clubstats:roster"
	cacheTTL = 10 * time.Minute
)

// Provider serves player and team name lists to the question engine.
// Lookups go memory first, then Redis, then the database. A background
// refresh loop keeps the in-memory copy warm so question handling never
// blocks on a roster fetch in the steady state.
type Provider struct {
	players *repository.PlayerRepository
	teams   *repository.TeamRepository
	cache   *cache.RedisCache

	refreshEvery time.Duration

	mu      sync.RWMutex
	current engine.Roster
	loaded  bool
}

// NewProvider creates a roster provider. cache may be nil, in which case
// the Redis tier is skipped.
func NewProvider(db *store.Database, redisCache *cache.RedisCache, refreshEvery time.Duration) *Provider {
	if refreshEvery <= 0 {
		refreshEvery = 5 * time.Minute
	}
	return &Provider{
		players:      repository.NewPlayerRepository(db),
		teams:        repository.NewTeamRepository(db),
		cache:        redisCache,
		refreshEvery: refreshEvery,
	}
}

// Roster returns the active player and team names
func (p *Provider) Roster(ctx context.Context) (*engine.Roster, error) {
	p.mu.RLock()
	if p.loaded {
		roster := p.current
		p.mu.RUnlock()
		return &roster, nil
	}
	p.mu.RUnlock()

	roster, err := p.refresh(ctx)
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

// Start runs the background refresh loop until ctx is cancelled
func (p *Provider) Start(ctx context.Context) {
	if _, err := p.refresh(ctx); err != nil {
		log.Printf("  ⚠️  Initial roster load failed: %v", err)
	}

	ticker := time.NewTicker(p.refreshEvery)
	defer ticker.Stop()

	log.Printf("→ Roster refresh started (interval: %v)", p.refreshEvery)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Roster refresh stopped")
			return
		case <-ticker.C:
			if _, err := p.refresh(ctx); err != nil {
				log.Printf("  ⚠️  Roster refresh failed: %v", err)
			}
		}
	}
}

func (p *Provider) refresh(ctx context.Context) (engine.Roster, error) {
	// Redis tier first: another instance may have loaded it already
	if p.cache != nil {
		var cached engine.Roster
		err := p.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && len(cached.Players) > 0 {
			p.store(cached)
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("  ⚠️  Roster cache read failed: %v", err)
		}
	}

	roster, err := p.loadFromDatabase(ctx)
	if err != nil {
		return engine.Roster{}, err
	}

	p.store(roster)

	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, cacheKey, roster, cacheTTL); err != nil {
			log.Printf("  ⚠️  Roster cache write failed: %v", err)
		}
	}

	return roster, nil
}

func (p *Provider) loadFromDatabase(ctx context.Context) (engine.Roster, error) {
	players, err := p.players.GetAllActive(ctx)
	if err != nil {
		return engine.Roster{}, err
	}

	teams, err := p.teams.GetAll(ctx)
	if err != nil {
		return engine.Roster{}, err
	}

	roster := engine.Roster{
		Players: make([]string, 0, len(players)),
		Teams:   make([]string, 0, len(teams)),
	}
	for _, player := range players {
		roster.Players = append(roster.Players, player.FullName)
	}
	for _, team := range teams {
		roster.Teams = append(roster.Teams, team.Name)
		if team.ShortName != "" && team.ShortName != team.Name {
			roster.Teams = append(roster.Teams, team.ShortName)
		}
	}
	return roster, nil
}

func (p *Provider) store(roster engine.Roster) {
	p.mu.Lock()
	p.current = roster
	p.loaded = true
	p.mu.Unlock()
}
