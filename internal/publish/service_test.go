package publish

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps projects in memory and enforces slug uniqueness the way the
// partial unique index does: on the write itself.
type fakeStore struct {
	projects map[string]*Project
}

func newFakeStore(projects ...*Project) *fakeStore {
	s := &fakeStore{projects: make(map[string]*Project)}
	for _, p := range projects {
		s.projects[p.PublicID] = p
	}
	return s
}

func (s *fakeStore) GetByPublicID(_ context.Context, publicID string) (*Project, error) {
	p, ok := s.projects[publicID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) SetPublished(_ context.Context, publicID, ownerID, slug string) (*time.Time, error) {
	p, ok := s.projects[publicID]
	if !ok || p.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	for id, other := range s.projects {
		if id != publicID && other.Slug != nil && *other.Slug == slug {
			return nil, ErrSlugTaken
		}
	}
	now := time.Now()
	p.Slug = &slug
	p.Published = true
	p.PublishedAt = &now
	return &now, nil
}

func (s *fakeStore) ClearPublished(_ context.Context, publicID string) error {
	p, ok := s.projects[publicID]
	if !ok {
		return ErrNotFound
	}
	p.Slug = nil
	p.Published = false
	p.PublishedAt = nil
	return nil
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) Invalidate(_ context.Context, slugs ...string) error {
	c.invalidated = append(c.invalidated, slugs...)
	return nil
}

func testManager(store Store, cache Invalidator) *Manager {
	return NewManager(store, cache, Config{DevWildcardHost: "lvh.me", DevPort: "3000"}, zerolog.Nop())
}

func TestPublish_Success(t *testing.T) {
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1"})
	m := testManager(store, nil)

	res, err := m.Publish(context.Background(), "p1", Caller{UserID: "u1"}, "My Site")
	require.NoError(t, err)

	assert.Equal(t, "my-site", res.Slug)
	assert.Equal(t, "/s/my-site", res.PreviewPath)
	assert.Equal(t, "http://my-site.lvh.me:3000", res.LocalSubdomainURL)

	p, _ := store.GetByPublicID(context.Background(), "p1")
	assert.True(t, p.Published)
	require.NotNil(t, p.Slug)
	assert.Equal(t, "my-site", *p.Slug)
	assert.NotNil(t, p.PublishedAt)
}

func TestPublish_SlugConflictLeavesTargetUnchanged(t *testing.T) {
	acme := "acme"
	store := newFakeStore(
		&Project{PublicID: "p1", OwnerID: "u1", Slug: &acme, Published: true},
		&Project{PublicID: "p2", OwnerID: "u2"},
	)
	m := testManager(store, nil)

	_, err := m.Publish(context.Background(), "p2", Caller{UserID: "u2"}, "acme")
	assert.ErrorIs(t, err, ErrSlugTaken)

	p2, _ := store.GetByPublicID(context.Background(), "p2")
	assert.False(t, p2.Published)
	assert.Nil(t, p2.Slug)
}

func TestPublish_RepublishReleasesOldSlug(t *testing.T) {
	store := newFakeStore(
		&Project{PublicID: "p1", OwnerID: "u1"},
		&Project{PublicID: "p2", OwnerID: "u2"},
	)
	m := testManager(store, nil)
	ctx := context.Background()

	_, err := m.Publish(ctx, "p1", Caller{UserID: "u1"}, "acme")
	require.NoError(t, err)

	_, err = m.Publish(ctx, "p1", Caller{UserID: "u1"}, "acme-2")
	require.NoError(t, err)

	// "acme" is free again for any other project.
	res, err := m.Publish(ctx, "p2", Caller{UserID: "u2"}, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", res.Slug)
}

func TestPublish_InvalidSlug(t *testing.T) {
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1"})
	m := testManager(store, nil)

	for _, raw := range []string{"", "   ", "!!!", "---"} {
		_, err := m.Publish(context.Background(), "p1", Caller{UserID: "u1"}, raw)
		assert.ErrorIs(t, err, ErrInvalidSlug, "raw slug %q", raw)
	}
}

func TestPublish_Unauthenticated(t *testing.T) {
	m := testManager(newFakeStore(&Project{PublicID: "p1", OwnerID: "u1"}), nil)

	_, err := m.Publish(context.Background(), "p1", Caller{}, "acme")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPublish_NonOwnerRejected(t *testing.T) {
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1"})
	m := testManager(store, nil)

	_, err := m.Publish(context.Background(), "p1", Caller{UserID: "u2"}, "acme")
	assert.ErrorIs(t, err, ErrUnauthorized)

	p, _ := store.GetByPublicID(context.Background(), "p1")
	assert.False(t, p.Published)
	assert.Nil(t, p.Slug)
}

func TestPublish_NotFound(t *testing.T) {
	m := testManager(newFakeStore(), nil)

	_, err := m.Publish(context.Background(), "missing", Caller{UserID: "u1"}, "acme")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnpublish_ClearsAllFields(t *testing.T) {
	acme := "acme"
	now := time.Now()
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1", Slug: &acme, Published: true, PublishedAt: &now})
	m := testManager(store, nil)

	require.NoError(t, m.Unpublish(context.Background(), "p1", Caller{UserID: "u1"}))

	p, _ := store.GetByPublicID(context.Background(), "p1")
	assert.False(t, p.Published)
	assert.Nil(t, p.Slug)
	assert.Nil(t, p.PublishedAt)
}

func TestUnpublish_IdempotentOnDraft(t *testing.T) {
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1"})
	m := testManager(store, nil)

	assert.NoError(t, m.Unpublish(context.Background(), "p1", Caller{UserID: "u1"}))
	assert.NoError(t, m.Unpublish(context.Background(), "p1", Caller{UserID: "u1"}))
}

func TestUnpublish_AdminMayModerateAnyProject(t *testing.T) {
	acme := "acme"
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1", Slug: &acme, Published: true})
	m := testManager(store, nil)

	require.NoError(t, m.Unpublish(context.Background(), "p1", Caller{UserID: "admin-1", Admin: true}))

	p, _ := store.GetByPublicID(context.Background(), "p1")
	assert.False(t, p.Published)
}

func TestUnpublish_NonOwnerRejected(t *testing.T) {
	acme := "acme"
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1", Slug: &acme, Published: true})
	m := testManager(store, nil)

	err := m.Unpublish(context.Background(), "p1", Caller{UserID: "u2"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	p, _ := store.GetByPublicID(context.Background(), "p1")
	assert.True(t, p.Published)
}

func TestPublish_InvalidatesOldAndNewSlug(t *testing.T) {
	store := newFakeStore(&Project{PublicID: "p1", OwnerID: "u1"})
	cache := &recordingCache{}
	m := testManager(store, cache)
	ctx := context.Background()

	_, err := m.Publish(ctx, "p1", Caller{UserID: "u1"}, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, cache.invalidated)

	cache.invalidated = nil
	_, err = m.Publish(ctx, "p1", Caller{UserID: "u1"}, "acme-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "acme-2"}, cache.invalidated)

	cache.invalidated = nil
	require.NoError(t, m.Unpublish(ctx, "p1", Caller{UserID: "u1"}))
	assert.Equal(t, []string{"acme-2"}, cache.invalidated)
}
