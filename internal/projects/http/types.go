package http

import "github.com/forless-ai/forless-backend/internal/projects"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	repo *projects.Repo
}

func New(repo *projects.Repo) *Handler {
	return &Handler{repo: repo}
}
