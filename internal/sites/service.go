package sites

import (
	"context"

	"github.com/rs/zerolog"
)

// Service resolves a slug to a servable site, consulting the cache first.
// The cache is optional; without it every request hits Postgres.
type Service struct {
	repo  *Repo
	cache *Cache
	log   zerolog.Logger
}

func NewService(repo *Repo, cache *Cache, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log.With().Str("component", "sites").Logger()}
}

func (s *Service) Resolve(ctx context.Context, slug string) (*Site, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, slug)
		if err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Msg("site cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	site, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, site); err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Msg("site cache write failed")
		}
	}
	return site, nil
}
