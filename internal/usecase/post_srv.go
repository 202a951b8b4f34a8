package usecase

import (
	"context"
	"fmt"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/data/repository"
	"catalog-web/internal/dto/request"
	"catalog-web/internal/dto/response"
	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

// PostFormController backs the create and edit post pages.
type PostFormController struct {
	formCore
	repo   repository.PostRepository
	fields request.PostForm
	saved  *entity.Post
}

func NewPostFormController(
	repo repository.PostRepository,
	id string,
	maxBytes int64,
	log *zap.Logger,
) *PostFormController {
	return &PostFormController{
		formCore: newFormCore(id, maxBytes, log.With(zap.String("service", "post_form"))),
		repo:     repo,
	}
}

func (c *PostFormController) Load(ctx context.Context) error {
	if c.recordID == "" {
		return nil
	}

	token := c.beginLoad()
	post, err := c.repo.FindByID(ctx, c.recordID)

	return c.finishLoad(token, err, "Failed to load post", func() string {
		c.fields = request.PostFormFromEntity(post)
		return post.ImageURL()
	})
}

func (c *PostFormController) SetFields(form request.PostForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != FormEditing {
		return ErrFormNotEditable
	}
	c.fields = form
	return nil
}

func (c *PostFormController) Submit(ctx context.Context) (*entity.Post, error) {
	var draft request.PostDraft
	err := c.beginSubmit(func() error {
		fields := c.fields.Normalize()
		if err := utils.FirstValidationError(fields); err != nil {
			return err
		}
		draft = request.PostDraft{
			Name:        fields.Name,
			Description: fields.Description,
			Image:       c.image.Payload(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var post *entity.Post
	if c.recordID == "" {
		post, err = c.repo.Create(ctx, &draft)
	} else {
		post, err = c.repo.Update(ctx, c.recordID, &draft)
	}

	fallback := "Failed to create post"
	if c.recordID != "" {
		fallback = "Failed to update post"
	}
	c.finishSubmit(err, fallback)
	if err != nil {
		return nil, fmt.Errorf("submit post: %w", err)
	}

	c.mu.Lock()
	c.saved = post
	c.mu.Unlock()

	c.log.Info("Post saved", zap.String("post_id", post.ID), zap.Bool("edit", c.recordID != ""))
	return post, nil
}

func (c *PostFormController) Saved() *entity.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

func (c *PostFormController) Snapshot() response.FormView[request.PostForm] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return response.FormView[request.PostForm]{
		RecordID: c.recordID,
		IsEdit:   c.recordID != "",
		State:    string(c.state),
		Fields:   c.fields,
		Image:    c.image.View(),
		Error:    c.errMsg,
	}
}
