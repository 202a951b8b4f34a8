package repository

import (
	"catalog-web/pkg/backend"

	"go.uber.org/zap"
)

// Repository groups the remote resource clients, one per catalog.
type Repository struct {
	Movie MovieRepository
	Post  PostRepository
}

func NewRepository(doer backend.Doer, baseURL string, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(doer, baseURL, log),
		Post:  NewPostRepository(doer, baseURL, log),
	}
}
