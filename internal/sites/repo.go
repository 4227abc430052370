package sites

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers every unservable case: unknown slug, unpublished
// project, or a published project with no website document. The public
// renderer treats them identically.
var ErrNotFound = errors.New("site not found")

// Site is the public payload for one published tenant.
type Site struct {
	Slug    string          `json:"slug"`
	Brand   json.RawMessage `json:"brand,omitempty"`
	Website json.RawMessage `json:"website"`
}

// Repo reads published site content. No ownership scoping here: this is the
// anonymous, read-only path behind the hostname rewrite.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*Site, error) {
	const q = `
select p.slug, p.brand_data, w.data
from projects p
join websites w on w.project_id = p.id
where p.slug = $1 and p.published = true and p.deleted_at is null;
`
	var s Site
	err := r.db.QueryRow(ctx, q, slug).Scan(&s.Slug, &s.Brand, &s.Website)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
