package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forless-ai/forless-backend/internal/projects"
	"github.com/forless-ai/forless-backend/internal/publish"
	"github.com/forless-ai/forless-backend/internal/users"
)

// setupTestPostgres connects to the database named by TEST_DB_DSN.
// Skips the test if it is not set. The schema from migrations/ must be
// applied (run with DB_MIGRATE=true once, or via the migrate CLI).
func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, suffix string) string {
	t.Helper()

	repo := users.NewRepo(pool)
	id, err := repo.EnsureUser(context.Background(), users.UpsertUser{
		FirebaseUID: fmt.Sprintf("it-%s-%d", suffix, time.Now().UnixNano()),
	})
	require.NoError(t, err)
	return id.ID
}

func createTestProject(t *testing.T, pool *pgxpool.Pool, userID, name string) string {
	t.Helper()

	repo := projects.NewRepo(pool)
	p, err := repo.Create(context.Background(), userID, name, "")
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `delete from projects where public_id = $1`, p.PublicID)
	})
	return p.PublicID
}

func TestPublishRepo_FullLifecycle(t *testing.T) {
	pool := setupTestPostgres(t)
	ctx := context.Background()

	userID := createTestUser(t, pool, "owner")
	projectID := createTestProject(t, pool, userID, "lifecycle")

	store := publish.NewRepo(pool)
	m := publish.NewManager(store, nil, publish.Config{DevWildcardHost: "lvh.me", DevPort: "3000"}, zerolog.Nop())

	slug := fmt.Sprintf("it-%d", time.Now().UnixNano())
	res, err := m.Publish(ctx, projectID, publish.Caller{UserID: userID}, slug)
	require.NoError(t, err)
	assert.Equal(t, slug, res.Slug)

	p, err := store.GetByPublicID(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, p.Published)
	require.NotNil(t, p.Slug)
	assert.Equal(t, slug, *p.Slug)
	assert.NotNil(t, p.PublishedAt)

	require.NoError(t, m.Unpublish(ctx, projectID, publish.Caller{UserID: userID}))

	p, err = store.GetByPublicID(ctx, projectID)
	require.NoError(t, err)
	assert.False(t, p.Published)
	assert.Nil(t, p.Slug)
	assert.Nil(t, p.PublishedAt)
}

func TestPublishRepo_SlugUniquenessAcrossProjects(t *testing.T) {
	pool := setupTestPostgres(t)
	ctx := context.Background()

	owner1 := createTestUser(t, pool, "u1")
	owner2 := createTestUser(t, pool, "u2")
	p1 := createTestProject(t, pool, owner1, "first")
	p2 := createTestProject(t, pool, owner2, "second")

	store := publish.NewRepo(pool)
	m := publish.NewManager(store, nil, publish.Config{DevWildcardHost: "lvh.me", DevPort: "3000"}, zerolog.Nop())

	slug := fmt.Sprintf("it-%d", time.Now().UnixNano())
	_, err := m.Publish(ctx, p1, publish.Caller{UserID: owner1}, slug)
	require.NoError(t, err)

	// The unique index rejects the second claim on the write itself.
	_, err = m.Publish(ctx, p2, publish.Caller{UserID: owner2}, slug)
	assert.ErrorIs(t, err, publish.ErrSlugTaken)

	got, err := store.GetByPublicID(ctx, p2)
	require.NoError(t, err)
	assert.False(t, got.Published)
	assert.Nil(t, got.Slug)

	// Releasing the slug makes it claimable again.
	require.NoError(t, m.Unpublish(ctx, p1, publish.Caller{UserID: owner1}))
	_, err = m.Publish(ctx, p2, publish.Caller{UserID: owner2}, slug)
	assert.NoError(t, err)
}
