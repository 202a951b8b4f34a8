package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-web/internal/dto/request"
	"catalog-web/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPostRepo(server *httptest.Server) PostRepository {
	return NewPostRepository(server.Client(), server.URL+"/api/", zap.NewNop())
}

func TestPostRepository_CreateWithoutImage(t *testing.T) {
	server := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/post", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		form := r.MultipartForm
		assert.Equal(t, []string{"Hello"}, form.Value["name"])
		assert.Equal(t, []string{"World"}, form.Value["description"])
		assert.NotContains(t, form.Value, "imageUrl")
		assert.Empty(t, form.File)

		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":"p1","name":"Hello","description":"World"}}`)
	})

	post, err := newTestPostRepo(server).Create(context.Background(), &request.PostDraft{Name: "Hello", Description: "World"})

	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "Hello", post.Label())
	assert.Empty(t, post.ImageURL())
}

func TestPostRepository_UpdateWithFile(t *testing.T) {
	server := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/post/p1", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		files := r.MultipartForm.File["image"]
		if !assert.Len(t, files, 1) {
			return
		}
		assert.Equal(t, "cover.jpg", files[0].Filename)
		assert.NotContains(t, r.MultipartForm.Value, "imageUrl")

		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":"p1","name":"Hello","imageUrl":"http://img/cover.jpg"}}`)
	})

	draft := &request.PostDraft{
		Name:  "Hello",
		Image: request.ImagePayload{File: &request.PendingFile{Filename: "cover.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}},
	}
	post, err := newTestPostRepo(server).Update(context.Background(), "p1", draft)

	require.NoError(t, err)
	assert.Equal(t, "http://img/cover.jpg", post.ImageURL())
}

func TestPostRepository_FindAll(t *testing.T) {
	server := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/post", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":"a","name":"Zebra"},{"id":"b","name":"apple"}]}`)
	})

	posts, err := newTestPostRepo(server).FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Zebra", posts[0].Name)
}

func TestPostRepository_SearchAndSort(t *testing.T) {
	server := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/post/search":
			assert.Equal(t, "hel", r.URL.Query().Get("name"))
		case "/api/post/sort":
			assert.Equal(t, "false", r.URL.Query().Get("ascending"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	})
	repo := newTestPostRepo(server)

	_, err := repo.Search(context.Background(), "hel")
	require.NoError(t, err)

	_, err = repo.Sort(context.Background(), false)
	require.NoError(t, err)
}

func TestPostRepository_FindByIDNotFound(t *testing.T) {
	server := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"message":"Post not found"}`)
	})

	_, err := newTestPostRepo(server).FindByID(context.Background(), "nope")

	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.Equal(t, "Post not found", utils.UserMessage(err, "fallback"))
}

func TestPostRepository_UndecodableSuccess(t *testing.T) {
	server := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `not json`)
	})

	_, err := newTestPostRepo(server).FindAll(context.Background())

	assert.True(t, errors.Is(err, utils.ErrServer))
	assert.Equal(t, "Unexpected response from server", utils.UserMessage(err, "fallback"))
}
