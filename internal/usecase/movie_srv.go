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

// MovieFormController backs the create and edit movie pages.
type MovieFormController struct {
	formCore
	repo   repository.MovieRepository
	fields request.MovieForm
	saved  *entity.Movie
}

// NewMovieFormController builds a create form when id is empty and an edit
// form (to be Loaded) otherwise.
func NewMovieFormController(
	repo repository.MovieRepository,
	id string,
	maxBytes int64,
	log *zap.Logger,
) *MovieFormController {
	return &MovieFormController{
		formCore: newFormCore(id, maxBytes, log.With(zap.String("service", "movie_form"))),
		repo:     repo,
	}
}

// Load fetches the record being edited and prefills the form with it.
// A create form has nothing to load.
func (c *MovieFormController) Load(ctx context.Context) error {
	if c.recordID == "" {
		return nil
	}

	token := c.beginLoad()
	movie, err := c.repo.FindByID(ctx, c.recordID)

	return c.finishLoad(token, err, "Failed to load movie", func() string {
		c.fields = request.MovieFormFromEntity(movie)
		return movie.ImageURL()
	})
}

// SetFields replaces the typed values.
func (c *MovieFormController) SetFields(form request.MovieForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != FormEditing {
		return ErrFormNotEditable
	}
	c.fields = form
	return nil
}

// Submit validates locally, then creates or updates the movie. Validation
// failures never reach the server. On any failure the form stays editable
// with the entered values kept.
func (c *MovieFormController) Submit(ctx context.Context) (*entity.Movie, error) {
	var draft request.MovieDraft
	err := c.beginSubmit(func() error {
		fields := c.fields.Normalize()
		if err := utils.FirstValidationError(fields); err != nil {
			return err
		}
		rating, err := utils.ParseOptionalFloat(fields.Rating)
		if err != nil {
			return utils.NewValidationError("Rating must be between 1 and 5")
		}
		draft = request.MovieDraft{
			Title:  fields.Title,
			Genre:  fields.Genre,
			Rating: rating,
			Image:  c.image.Payload(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var movie *entity.Movie
	if c.recordID == "" {
		movie, err = c.repo.Create(ctx, &draft)
	} else {
		movie, err = c.repo.Update(ctx, c.recordID, &draft)
	}

	c.finishSubmit(err, c.failureMessage())
	if err != nil {
		return nil, fmt.Errorf("submit movie: %w", err)
	}

	c.mu.Lock()
	c.saved = movie
	c.mu.Unlock()

	c.log.Info("Movie saved", zap.String("movie_id", movie.ID), zap.Bool("edit", c.recordID != ""))
	return movie, nil
}

func (c *MovieFormController) failureMessage() string {
	if c.recordID == "" {
		return "Failed to create movie"
	}
	return "Failed to update movie"
}

// Saved is the movie returned by the last successful submit, if any.
func (c *MovieFormController) Saved() *entity.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

func (c *MovieFormController) Snapshot() response.FormView[request.MovieForm] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return response.FormView[request.MovieForm]{
		RecordID: c.recordID,
		IsEdit:   c.recordID != "",
		State:    string(c.state),
		Fields:   c.fields,
		Image:    c.image.View(),
		Error:    c.errMsg,
	}
}
