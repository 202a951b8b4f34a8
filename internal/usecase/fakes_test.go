package usecase

import (
	"context"
	"sync"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/pkg/utils"
)

// fakeMovieRepo records what the controllers send and answers from fields.
type fakeMovieRepo struct {
	mu       sync.Mutex
	movies   []entity.Movie
	findErr  error
	saveErr  error
	creates  []request.MovieDraft
	updates  map[string]request.MovieDraft
	deleted  []string
	findByID int
}

func (f *fakeMovieRepo) FindAll(ctx context.Context, criteria *request.ListQuery) ([]entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return append([]entity.Movie(nil), f.movies...), nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByID++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, m := range f.movies {
		if m.ID == id {
			movie := m
			return &movie, nil
		}
	}
	return nil, utils.NewNotFoundError("Movie not found")
}

func (f *fakeMovieRepo) Create(ctx context.Context, draft *request.MovieDraft) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, *draft)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &entity.Movie{Base: entity.Base{ID: "new"}, Title: draft.Title, Rating: draft.Rating}, nil
}

func (f *fakeMovieRepo) Update(ctx context.Context, id string, draft *request.MovieDraft) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[string]request.MovieDraft)
	}
	f.updates[id] = *draft
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &entity.Movie{Base: entity.Base{ID: id}, Title: draft.Title, Rating: draft.Rating}, nil
}

func (f *fakeMovieRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePostRepo struct {
	mu      sync.Mutex
	posts   []entity.Post
	creates []request.PostDraft
	updates map[string]request.PostDraft
}

func (f *fakePostRepo) FindAll(ctx context.Context) ([]entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Post(nil), f.posts...), nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, utils.NewNotFoundError("Post not found")
}

func (f *fakePostRepo) Create(ctx context.Context, draft *request.PostDraft) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, *draft)
	return &entity.Post{Base: entity.Base{ID: "new"}, Name: draft.Name, Description: draft.Description}, nil
}

func (f *fakePostRepo) Update(ctx context.Context, id string, draft *request.PostDraft) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[string]request.PostDraft)
	}
	f.updates[id] = *draft
	return &entity.Post{Base: entity.Base{ID: id}, Name: draft.Name}, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakePostRepo) Search(ctx context.Context, name string) ([]entity.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) Sort(ctx context.Context, ascending bool) ([]entity.Post, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

func floatPtr(n float64) *float64 { return &n }

func movie(id, title, genre string, rating *float64) entity.Movie {
	m := entity.Movie{Base: entity.Base{ID: id}, Title: title, Rating: rating}
	if genre != "" {
		m.Genre = strPtr(genre)
	}
	return m
}

func labels[T entity.Record](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label()
	}
	return out
}

// pngBytes is enough of a PNG for content sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
