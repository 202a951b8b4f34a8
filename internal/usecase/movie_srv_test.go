package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMovieForm(repo *fakeMovieRepo, id string) *MovieFormController {
	return NewMovieFormController(repo, id, 1<<20, zap.NewNop())
}

func TestMovieForm_ValidationNeverReachesServer(t *testing.T) {
	tests := []struct {
		name string
		form request.MovieForm
		want string
	}{
		{"rating out of range", request.MovieForm{Title: "Inception", Rating: "9"}, "Rating must be between 1 and 5"},
		{"blank title", request.MovieForm{Title: "   ", Rating: "3"}, "Title is required"},
		{"title checked before rating", request.MovieForm{Rating: "9"}, "Title is required"},
		{"rating not numeric", request.MovieForm{Title: "Heat", Rating: "great"}, "Rating must be between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeMovieRepo{}
			form := newMovieForm(repo, "")
			require.NoError(t, form.SetFields(tt.form))

			_, err := form.Submit(context.Background())

			assert.True(t, errors.Is(err, utils.ErrValidationFailed))
			assert.Empty(t, repo.creates)
			view := form.Snapshot()
			assert.Equal(t, string(FormEditing), view.State)
			assert.Equal(t, tt.want, view.Error)
			assert.Equal(t, tt.form, view.Fields, "entered values are kept")
		})
	}
}

func TestMovieForm_CreateTrimsAndOmits(t *testing.T) {
	repo := &fakeMovieRepo{}
	form := newMovieForm(repo, "")
	require.NoError(t, form.SetFields(request.MovieForm{Title: "  Heat  ", Genre: "  ", Rating: " 4 "}))

	movie, err := form.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.creates, 1)
	draft := repo.creates[0]
	assert.Equal(t, "Heat", draft.Title)
	assert.Empty(t, draft.Genre)
	require.NotNil(t, draft.Rating)
	assert.Equal(t, 4.0, *draft.Rating)
	assert.Equal(t, request.ImagePayload{}, draft.Image)

	assert.Equal(t, "new", movie.ID)
	assert.Equal(t, movie, form.Saved())
	assert.Equal(t, string(FormDone), form.Snapshot().State)

	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFormNotEditable)
	assert.Len(t, repo.creates, 1)
}

func TestMovieForm_FractionalRatingInRange(t *testing.T) {
	repo := &fakeMovieRepo{}
	form := newMovieForm(repo, "")
	require.NoError(t, form.SetFields(request.MovieForm{Title: "Heat", Rating: "4.5"}))

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.creates, 1)
	require.NotNil(t, repo.creates[0].Rating)
	assert.Equal(t, 4.5, *repo.creates[0].Rating)
}

func TestMovieForm_CreateWithUpload(t *testing.T) {
	repo := &fakeMovieRepo{}
	form := newMovieForm(repo, "")
	require.NoError(t, form.SetFields(request.MovieForm{Title: "Heat"}))
	require.NoError(t, form.SelectFile("poster.png", bytes.NewReader(pngBytes)))

	view := form.Snapshot()
	assert.Equal(t, "poster.png", view.Image.PendingName)
	assert.Contains(t, view.Image.Preview, "data:image/png;base64,")

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.creates, 1)
	require.NotNil(t, repo.creates[0].Image.File)
	assert.Equal(t, "poster.png", repo.creates[0].Image.File.Filename)
	assert.Empty(t, repo.creates[0].Image.URL)
}

func TestMovieForm_RejectedFileShowsError(t *testing.T) {
	form := newMovieForm(&fakeMovieRepo{}, "")

	err := form.SelectFile("notes.txt", bytes.NewReader([]byte("just some text")))

	assert.True(t, errors.Is(err, utils.ErrValidationFailed))
	view := form.Snapshot()
	assert.Equal(t, "Selected file is not an image", view.Error)
	assert.Empty(t, view.Image.PendingName)
}

func TestMovieForm_EditPrefillsAndKeepsImage(t *testing.T) {
	repo := &fakeMovieRepo{movies: []entity.Movie{{
		Base:           entity.Base{ID: "7"},
		Title:          "Alien",
		Genre:          strPtr("Horror"),
		Rating:         floatPtr(4.5),
		PosterImageURL: strPtr("http://img/alien.jpg"),
	}}}
	form := newMovieForm(repo, "7")
	assert.Equal(t, FormLoading, form.State())

	require.NoError(t, form.Load(context.Background()))

	view := form.Snapshot()
	assert.True(t, view.IsEdit)
	assert.Equal(t, string(FormEditing), view.State)
	assert.Equal(t, request.MovieForm{Title: "Alien", Genre: "Horror", Rating: "4.5"}, view.Fields)
	assert.Equal(t, request.ImageModeURL, view.Image.Mode)
	assert.Equal(t, "http://img/alien.jpg", view.Image.Preview)

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	draft, ok := repo.updates["7"]
	require.True(t, ok)
	assert.Equal(t, "Alien", draft.Title)
	assert.Equal(t, request.ImagePayload{}, draft.Image, "unchanged poster is not re-sent")
	assert.Empty(t, repo.creates)
}

func TestMovieForm_EditChangesURL(t *testing.T) {
	repo := &fakeMovieRepo{movies: []entity.Movie{{
		Base: entity.Base{ID: "7"}, Title: "Alien", PosterImageURL: strPtr("http://img/alien.jpg"),
	}}}
	form := newMovieForm(repo, "7")
	require.NoError(t, form.Load(context.Background()))

	require.NoError(t, form.SetImageURL("http://img/alien-2.jpg"))
	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, request.ImagePayload{URL: "http://img/alien-2.jpg"}, repo.updates["7"].Image)
}

func TestMovieForm_EditLoadFails(t *testing.T) {
	repo := &fakeMovieRepo{}
	form := newMovieForm(repo, "missing")

	err := form.Load(context.Background())

	assert.True(t, errors.Is(err, utils.ErrNotFound))
	view := form.Snapshot()
	assert.Equal(t, string(FormLoadError), view.State)
	assert.Equal(t, "Movie not found", view.Error)
	assert.ErrorIs(t, form.SetFields(request.MovieForm{Title: "x"}), ErrFormNotEditable)
	assert.ErrorIs(t, form.SwitchImageMode(request.ImageModeURL), ErrFormNotEditable)
}

func TestMovieForm_ServerRejectionKeepsValues(t *testing.T) {
	repo := &fakeMovieRepo{saveErr: &utils.APIError{Kind: utils.ErrValidationFailed, Message: "Title already exists"}}
	form := newMovieForm(repo, "")
	fields := request.MovieForm{Title: "Heat", Genre: "Crime", Rating: "4"}
	require.NoError(t, form.SetFields(fields))

	_, err := form.Submit(context.Background())

	assert.True(t, errors.Is(err, utils.ErrValidationFailed))
	view := form.Snapshot()
	assert.Equal(t, string(FormEditing), view.State)
	assert.Equal(t, "Title already exists", view.Error)
	assert.Equal(t, fields, view.Fields)

	repo.saveErr = nil
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.creates, 2)
	assert.Empty(t, form.Snapshot().Error)
}

func TestMovieForm_NetworkFailureMessage(t *testing.T) {
	repo := &fakeMovieRepo{saveErr: &utils.APIError{Kind: utils.ErrServer}}
	form := newMovieForm(repo, "")
	require.NoError(t, form.SetFields(request.MovieForm{Title: "Heat"}))

	_, err := form.Submit(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "Failed to create movie", form.Snapshot().Error)
}
