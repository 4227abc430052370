package websites

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("website not found")

// Repo stores one website document per project.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, projectID string) (json.RawMessage, error) {
	const q = `
select data
from websites
where project_id = $1::uuid;
`
	var data json.RawMessage
	err := r.db.QueryRow(ctx, q, projectID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Repo) Upsert(ctx context.Context, projectID string, data json.RawMessage) error {
	const q = `
insert into websites (project_id, data, updated_at)
values ($1::uuid, $2, now())
on conflict (project_id) do update
set data = excluded.data, updated_at = now();
`
	_, err := r.db.Exec(ctx, q, projectID, data)
	return err
}
