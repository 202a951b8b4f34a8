package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/pkg/backend"
	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

type PostRepository interface {
	FindAll(ctx context.Context) ([]entity.Post, error)
	FindByID(ctx context.Context, id string) (*entity.Post, error)
	Create(ctx context.Context, draft *request.PostDraft) (*entity.Post, error)
	Update(ctx context.Context, id string, draft *request.PostDraft) (*entity.Post, error)
	Delete(ctx context.Context, id string) error

	// Search and Sort wrap the backend's dedicated endpoints. The list page
	// filters locally and does not use them.
	Search(ctx context.Context, name string) ([]entity.Post, error)
	Sort(ctx context.Context, ascending bool) ([]entity.Post, error)
}

type postRepository struct {
	api *apiClient
	log *zap.Logger
}

func NewPostRepository(doer backend.Doer, baseURL string, log *zap.Logger) PostRepository {
	log = log.With(zap.String("repository", "post"))
	return &postRepository{
		api: newAPIClient(doer, baseURL, "post", log),
		log: log,
	}
}

func (r *postRepository) FindAll(ctx context.Context) ([]entity.Post, error) {
	return r.list(ctx, "list", "/post", nil)
}

func (r *postRepository) Search(ctx context.Context, name string) ([]entity.Post, error) {
	return r.list(ctx, "search", "/post/search", url.Values{"name": {name}})
}

func (r *postRepository) Sort(ctx context.Context, ascending bool) ([]entity.Post, error) {
	return r.list(ctx, "sort", "/post/sort", url.Values{"ascending": {strconv.FormatBool(ascending)}})
}

func (r *postRepository) list(ctx context.Context, op, path string, query url.Values) ([]entity.Post, error) {
	res, err := send[[]entity.Post](ctx, r.api, call{
		op:     op,
		method: http.MethodGet,
		path:   path,
		query:  query,
	})
	if err != nil {
		return nil, fmt.Errorf("%s posts: %w", op, err)
	}
	if !res.envelope.Success {
		return nil, fmt.Errorf("%s posts: %w", op, failure(res, utils.ErrServer, "Failed to load posts"))
	}
	if res.envelope.Data == nil {
		return []entity.Post{}, nil
	}

	r.log.Debug("Posts retrieved", zap.String("operation", op), zap.Int("count", len(*res.envelope.Data)))
	return *res.envelope.Data, nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	res, err := send[entity.Post](ctx, r.api, call{
		op:     "get",
		method: http.MethodGet,
		path:   "/post/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	if res.envelope.Data == nil || res.status == http.StatusNotFound {
		return nil, fmt.Errorf("get post %s: %w", id, failure(res, utils.ErrNotFound, "Post not found"))
	}
	if !res.envelope.Success {
		return nil, fmt.Errorf("get post %s: %w", id, failure(res, utils.ErrServer, "Failed to load post"))
	}

	return res.envelope.Data, nil
}

func (r *postRepository) Create(ctx context.Context, draft *request.PostDraft) (*entity.Post, error) {
	body, contentType, err := encodePost(draft)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	res, err := send[entity.Post](ctx, r.api, call{
		op:          "create",
		method:      http.MethodPost,
		path:        "/post",
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if !res.envelope.Success || res.envelope.Data == nil {
		return nil, fmt.Errorf("create post: %w", failure(res, utils.ErrValidationFailed, "Failed to create post"))
	}

	r.log.Info("Post created",
		zap.String("post_id", res.envelope.Data.ID),
		zap.String("name", res.envelope.Data.Name),
	)
	return res.envelope.Data, nil
}

func (r *postRepository) Update(ctx context.Context, id string, draft *request.PostDraft) (*entity.Post, error) {
	body, contentType, err := encodePost(draft)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}

	res, err := send[entity.Post](ctx, r.api, call{
		op:          "update",
		method:      http.MethodPut,
		path:        "/post/" + url.PathEscape(id),
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	if !res.envelope.Success || res.envelope.Data == nil {
		return nil, fmt.Errorf("update post %s: %w", id, failure(res, utils.ErrValidationFailed, "Failed to update post"))
	}

	r.log.Info("Post updated", zap.String("post_id", id))
	return res.envelope.Data, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	res, err := send[struct{}](ctx, r.api, call{
		op:     "delete",
		method: http.MethodDelete,
		path:   "/post/" + url.PathEscape(id),
	})
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if !res.envelope.Success {
		return fmt.Errorf("delete post %s: %w", id, failure(res, utils.ErrServer, "Failed to delete post"))
	}

	r.log.Info("Post deleted", zap.String("post_id", id))
	return nil
}

func encodePost(draft *request.PostDraft) (body io.Reader, contentType string, err error) {
	form := newMultipartForm()
	form.Field("name", draft.Name)
	form.Field("description", draft.Description)
	form.Image("image", "imageUrl", draft.Image)
	return form.Close()
}
