package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forless-ai/forless-backend/internal/projects/domain"
)

var ErrNotFound = errors.New("project not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectCols = `public_id, name, description, status, brand_data, slug, published, published_at, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.PublicID, &p.Name, &p.Description, &p.Status, &p.BrandData,
		&p.Slug, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, userDBID, name, description string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("forless")
		if err != nil {
			return nil, err
		}

		q := `
insert into projects (public_id, user_id, name, description, status)
values ($1, $2::uuid, $3, nullif($4,''), 'draft')
returning ` + projectCols + `;
`
		p, err := scanProject(r.db.QueryRow(ctx, q, publicID, userDBID, name, description))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]domain.Project, error) {
	q := `
select ` + projectCols + `
from projects
where user_id = $1::uuid and deleted_at is null
order by updated_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.PublicID, &p.Name, &p.Description, &p.Status, &p.BrandData,
			&p.Slug, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*domain.Project, error) {
	q := `
select ` + projectCols + `
from projects
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	return scanProject(r.db.QueryRow(ctx, q, userDBID, publicID))
}

func (r *Repo) Rename(ctx context.Context, userDBID, publicID, newName string) (*domain.Project, error) {
	q := `
update projects
set name = $3, updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning ` + projectCols + `;
`
	return scanProject(r.db.QueryRow(ctx, q, userDBID, publicID, newName))
}

// SaveBrand stores the generated brand document and marks the project generated.
func (r *Repo) SaveBrand(ctx context.Context, userDBID, publicID string, brand json.RawMessage) (*domain.Project, error) {
	q := `
update projects
set brand_data = $3, status = 'generated', updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning ` + projectCols + `;
`
	return scanProject(r.db.QueryRow(ctx, q, userDBID, publicID, brand))
}

func (r *Repo) SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// InternalID resolves a public id to the row id, owner-scoped.
func (r *Repo) InternalID(ctx context.Context, userDBID, publicID string) (string, error) {
	const q = `
select id::text
from projects
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	var id string
	err := r.db.QueryRow(ctx, q, userDBID, publicID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

// PurgeDeleted hard-deletes projects that were soft-deleted before the cutoff.
// Called by the nightly scheduler.
func (r *Repo) PurgeDeleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	const q = `
delete from projects
where deleted_at is not null and deleted_at < now() - $1::interval;
`
	ct, err := r.db.Exec(ctx, q, fmt.Sprintf("%d seconds", int(olderThan.Seconds())))
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
