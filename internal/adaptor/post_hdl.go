package adaptor

import (
	"net/http"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/internal/usecase"

	"go.uber.org/zap"
)

type (
	PostListHandler = ListHandler[entity.Post]
	PostFormHandler = FormHandler[request.PostForm, *entity.Post]
)

func newPostListHandler(session *sessionHelper, render *Renderer, log *zap.Logger) *PostListHandler {
	return &PostListHandler{
		kind:  "posts",
		noun:  "post",
		title: "Posts",
		pick: func(state *usecase.ViewState) *usecase.ListController[entity.Post] {
			return state.Posts
		},
		criteria: postCriteria,
		session:  session,
		render:   render,
		log:      log.With(zap.String("handler", "post_list")),
	}
}

func newPostFormHandler(session *sessionHelper, render *Renderer, maxBytes int64, log *zap.Logger) *PostFormHandler {
	return &PostFormHandler{
		kind:      "posts",
		noun:      "Post",
		page:      "post_form",
		fileField: "image",
		urlField:  "imageUrl",
		maxBytes:  maxBytes,
		fields: func(r *http.Request) request.PostForm {
			return request.PostForm{
				Name:        r.FormValue("name"),
				Description: r.FormValue("description"),
			}
		},
		open: func(state *usecase.ViewState, id string) (string, recordForm[request.PostForm, *entity.Post]) {
			return state.OpenPostForm(id)
		},
		lookup: func(state *usecase.ViewState, draftID string) (recordForm[request.PostForm, *entity.Post], bool) {
			form, ok := state.PostForm(draftID)
			if !ok {
				return nil, false
			}
			return form, true
		},
		close: func(state *usecase.ViewState, draftID string) {
			state.ClosePostForm(draftID)
		},
		session: session,
		render:  render,
		log:     log.With(zap.String("handler", "post_form")),
	}
}
