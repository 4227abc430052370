package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Identity is the resolved database identity for an authenticated request.
type Identity struct {
	ID   string
	Role string
}

// EnsureUser upserts the user row keyed by firebase_uid and returns the
// database id and role. The role is never written here; admins are promoted
// out of band.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (Identity, error) {
	if u.FirebaseUID == "" {
		return Identity{}, fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, photo_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  updated_at = now()
returning id::text, role;
`
	var id Identity
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.PhotoURL).Scan(&id.ID, &id.Role); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Profile is the caller-visible shape of a user row.
type Profile struct {
	ID          string  `json:"id"`
	FirebaseUID string  `json:"firebase_uid"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Role        string  `json:"role"`
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Profile, error) {
	const q = `
select id::text, firebase_uid, email, display_name, photo_url, role
from users
where id = $1::uuid;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.FirebaseUID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.Role)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
