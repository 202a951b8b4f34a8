package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/pkg/backend"
	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

type MovieRepository interface {
	// FindAll lists movies. With non-nil criteria the backend filters and sorts.
	FindAll(ctx context.Context, criteria *request.ListQuery) ([]entity.Movie, error)
	FindByID(ctx context.Context, id string) (*entity.Movie, error)
	Create(ctx context.Context, draft *request.MovieDraft) (*entity.Movie, error)
	Update(ctx context.Context, id string, draft *request.MovieDraft) (*entity.Movie, error)
	Delete(ctx context.Context, id string) error
}

type movieRepository struct {
	api *apiClient
	log *zap.Logger
}

func NewMovieRepository(doer backend.Doer, baseURL string, log *zap.Logger) MovieRepository {
	log = log.With(zap.String("repository", "movie"))
	return &movieRepository{
		api: newAPIClient(doer, baseURL, "movie", log),
		log: log,
	}
}

func (r *movieRepository) FindAll(ctx context.Context, criteria *request.ListQuery) ([]entity.Movie, error) {
	var query url.Values
	if criteria != nil {
		query = criteria.Params()
	}

	res, err := send[[]entity.Movie](ctx, r.api, call{
		op:     "list",
		method: http.MethodGet,
		path:   "/movie",
		query:  query,
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	if !res.envelope.Success {
		return nil, fmt.Errorf("list movies: %w", failure(res, utils.ErrServer, "Failed to load movies"))
	}
	if res.envelope.Data == nil {
		return []entity.Movie{}, nil
	}

	r.log.Debug("Movies retrieved", zap.Int("count", len(*res.envelope.Data)))
	return *res.envelope.Data, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	res, err := send[entity.Movie](ctx, r.api, call{
		op:     "get",
		method: http.MethodGet,
		path:   "/movie/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}
	// No payload means not found, whatever the success flag claims.
	if res.envelope.Data == nil || res.status == http.StatusNotFound {
		return nil, fmt.Errorf("get movie %s: %w", id, failure(res, utils.ErrNotFound, "Movie not found"))
	}
	if !res.envelope.Success {
		return nil, fmt.Errorf("get movie %s: %w", id, failure(res, utils.ErrServer, "Failed to load movie"))
	}

	return res.envelope.Data, nil
}

func (r *movieRepository) Create(ctx context.Context, draft *request.MovieDraft) (*entity.Movie, error) {
	body, contentType, err := encodeMovie(draft)
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	res, err := send[entity.Movie](ctx, r.api, call{
		op:          "create",
		method:      http.MethodPost,
		path:        "/movie",
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	if !res.envelope.Success || res.envelope.Data == nil {
		return nil, fmt.Errorf("create movie: %w", failure(res, utils.ErrValidationFailed, "Failed to create movie"))
	}

	r.log.Info("Movie created",
		zap.String("movie_id", res.envelope.Data.ID),
		zap.String("title", res.envelope.Data.Title),
	)
	return res.envelope.Data, nil
}

func (r *movieRepository) Update(ctx context.Context, id string, draft *request.MovieDraft) (*entity.Movie, error) {
	body, contentType, err := encodeMovie(draft)
	if err != nil {
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}

	res, err := send[entity.Movie](ctx, r.api, call{
		op:          "update",
		method:      http.MethodPut,
		path:        "/movie/" + url.PathEscape(id),
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}
	if !res.envelope.Success || res.envelope.Data == nil {
		return nil, fmt.Errorf("update movie %s: %w", id, failure(res, utils.ErrValidationFailed, "Failed to update movie"))
	}

	r.log.Info("Movie updated", zap.String("movie_id", id))
	return res.envelope.Data, nil
}

func (r *movieRepository) Delete(ctx context.Context, id string) error {
	res, err := send[struct{}](ctx, r.api, call{
		op:     "delete",
		method: http.MethodDelete,
		path:   "/movie/" + url.PathEscape(id),
	})
	if err != nil {
		return fmt.Errorf("delete movie %s: %w", id, err)
	}
	if !res.envelope.Success {
		return fmt.Errorf("delete movie %s: %w", id, failure(res, utils.ErrServer, "Failed to delete movie"))
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id))
	return nil
}

func encodeMovie(draft *request.MovieDraft) (body io.Reader, contentType string, err error) {
	form := newMultipartForm()
	form.Field("title", draft.Title)
	form.Field("genre", draft.Genre)
	if draft.Rating != nil {
		form.Field("rating", utils.FormatNumber(*draft.Rating))
	}
	form.Image("posterImage", "posterImageUrl", draft.Image)
	return form.Close()
}
