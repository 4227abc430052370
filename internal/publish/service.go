package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Project is the publication-relevant subset of a project row.
// Slug and PublishedAt are nil exactly when Published is false.
type Project struct {
	PublicID    string
	OwnerID     string
	Slug        *string
	Published   bool
	PublishedAt *time.Time
}

// Store is the persistence collaborator for publish state. SetPublished
// must perform the three-field transition as a single conditional statement
// and report ErrSlugTaken when the slug uniqueness constraint trips, so the
// check and the write cannot race.
type Store interface {
	GetByPublicID(ctx context.Context, publicID string) (*Project, error)
	SetPublished(ctx context.Context, publicID, ownerID, slug string) (*time.Time, error)
	ClearPublished(ctx context.Context, publicID string) error
}

// Invalidator drops cached site payloads for slugs whose publication state
// changed. May be nil when no cache is wired.
type Invalidator interface {
	Invalidate(ctx context.Context, slugs ...string) error
}

// Caller identifies who is asking for a transition.
type Caller struct {
	UserID string
	Admin  bool
}

type Config struct {
	DevWildcardHost string
	DevPort         string
}

// Manager owns the draft <-> published state machine. It is the only
// component that mutates slug, published and published_at, and it always
// mutates them together.
type Manager struct {
	store Store
	cache Invalidator
	cfg   Config
	log   zerolog.Logger
}

func NewManager(store Store, cache Invalidator, cfg Config, log zerolog.Logger) *Manager {
	return &Manager{store: store, cache: cache, cfg: cfg, log: log.With().Str("component", "publish").Logger()}
}

// Result is returned to the caller on a successful publish.
type Result struct {
	Slug              string `json:"slug"`
	PreviewPath       string `json:"previewPath"`
	LocalSubdomainURL string `json:"localSubdomainUrl"`
}

// Publish transitions a project to the published state under the normalized
// form of rawSlug. Republishing under a new slug releases the old one in the
// same atomic update.
func (m *Manager) Publish(ctx context.Context, publicID string, caller Caller, rawSlug string) (*Result, error) {
	if caller.UserID == "" {
		return nil, ErrUnauthenticated
	}

	slug := Slugify(rawSlug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	p, err := m.store.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != caller.UserID && !caller.Admin {
		return nil, ErrUnauthorized
	}

	oldSlug := ""
	if p.Slug != nil {
		oldSlug = *p.Slug
	}

	// The update is scoped to (public_id, owner_id); the slug uniqueness
	// index rejects a concurrent claim with ErrSlugTaken.
	if _, err := m.store.SetPublished(ctx, publicID, p.OwnerID, slug); err != nil {
		return nil, err
	}

	m.invalidate(ctx, oldSlug, slug)
	m.log.Info().Str("project", publicID).Str("slug", slug).Msg("project published")

	return &Result{
		Slug:              slug,
		PreviewPath:       "/s/" + slug,
		LocalSubdomainURL: fmt.Sprintf("http://%s.%s:%s", slug, m.cfg.DevWildcardHost, m.cfg.DevPort),
	}, nil
}

// Unpublish reverts a project to draft, clearing slug and published_at in the
// same update. Idempotent: unpublishing a draft is a no-op success.
func (m *Manager) Unpublish(ctx context.Context, publicID string, caller Caller) error {
	if caller.UserID == "" {
		return ErrUnauthenticated
	}

	p, err := m.store.GetByPublicID(ctx, publicID)
	if err != nil {
		return err
	}
	if p.OwnerID != caller.UserID && !caller.Admin {
		return ErrUnauthorized
	}

	if !p.Published {
		return nil
	}

	if err := m.store.ClearPublished(ctx, publicID); err != nil {
		return err
	}

	if p.Slug != nil {
		m.invalidate(ctx, *p.Slug)
	}
	m.log.Info().Str("project", publicID).Bool("admin", caller.Admin).Msg("project unpublished")

	return nil
}

func (m *Manager) invalidate(ctx context.Context, slugs ...string) {
	if m.cache == nil {
		return
	}
	keep := slugs[:0]
	for _, s := range slugs {
		if s != "" {
			keep = append(keep, s)
		}
	}
	if len(keep) == 0 {
		return
	}
	if err := m.cache.Invalidate(ctx, keep...); err != nil {
		// The cache entry expires on its own; publication state is already durable.
		m.log.Warn().Err(err).Strs("slugs", keep).Msg("site cache invalidation failed")
	}
}
