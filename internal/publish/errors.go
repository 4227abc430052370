package publish

import "errors"

var (
	ErrUnauthenticated = errors.New("no authenticated caller")
	ErrUnauthorized    = errors.New("caller may not modify this project")
	ErrInvalidSlug     = errors.New("slug is empty after normalization")
	ErrSlugTaken       = errors.New("slug already claimed by another project")
	ErrNotFound        = errors.New("project not found")
)
