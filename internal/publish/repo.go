package publish

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements Store against Postgres. Slug uniqueness is owned by the
// partial unique index on projects(slug); a violation surfaces as code 23505
// on the same statement that performs the transition, so there is no window
// where two projects hold one slug.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetByPublicID(ctx context.Context, publicID string) (*Project, error) {
	const q = `
select public_id, user_id::text, slug, published, published_at
from projects
where public_id = $1 and deleted_at is null;
`
	var p Project
	err := r.db.QueryRow(ctx, q, publicID).
		Scan(&p.PublicID, &p.OwnerID, &p.Slug, &p.Published, &p.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SetPublished(ctx context.Context, publicID, ownerID, slug string) (*time.Time, error) {
	const q = `
update projects
set slug = $3, published = true, published_at = now(), updated_at = now()
where public_id = $1 and user_id = $2::uuid and deleted_at is null
returning published_at;
`
	var publishedAt time.Time
	err := r.db.QueryRow(ctx, q, publicID, ownerID, slug).Scan(&publishedAt)
	if err == nil {
		return &publishedAt, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil, ErrSlugTaken
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return nil, err
}

func (r *Repo) ClearPublished(ctx context.Context, publicID string) error {
	const q = `
update projects
set slug = null, published = false, published_at = null, updated_at = now()
where public_id = $1 and deleted_at is null;
`
	_, err := r.db.Exec(ctx, q, publicID)
	return err
}
