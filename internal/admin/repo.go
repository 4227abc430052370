package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRow is the moderation view of a project, owner included.
type ProjectRow struct {
	PublicID    string     `json:"public_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Slug        *string    `json:"slug,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	OwnerEmail  *string    `json:"owner_email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Repo holds the cross-user read queries the moderation panel needs.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListProjects(ctx context.Context) ([]ProjectRow, error) {
	const q = `
select p.public_id, p.name, p.status, p.slug, p.published, p.published_at, u.email, p.created_at, p.updated_at
from projects p
join users u on u.id = p.user_id
where p.deleted_at is null
order by p.updated_at desc;
`
	return r.queryRows(ctx, q)
}

// ListSites returns published projects only, newest publication first.
func (r *Repo) ListSites(ctx context.Context) ([]ProjectRow, error) {
	const q = `
select p.public_id, p.name, p.status, p.slug, p.published, p.published_at, u.email, p.created_at, p.updated_at
from projects p
join users u on u.id = p.user_id
where p.published = true and p.deleted_at is null
order by p.published_at desc;
`
	return r.queryRows(ctx, q)
}

func (r *Repo) queryRows(ctx context.Context, q string) ([]ProjectRow, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectRow, 0, 32)
	for rows.Next() {
		var p ProjectRow
		if err := rows.Scan(&p.PublicID, &p.Name, &p.Status, &p.Slug, &p.Published,
			&p.PublishedAt, &p.OwnerEmail, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
