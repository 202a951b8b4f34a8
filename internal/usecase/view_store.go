package usecase

import (
	"context"
	"fmt"
	"sync"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/data/repository"
	"catalog-web/pkg/utils"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// ViewState is everything one browser session has on screen: both list pages
// and the record forms it has opened.
type ViewState struct {
	Movies *ListController[entity.Movie]
	Posts  *ListController[entity.Post]

	movieForms *lru.Cache[string, *MovieFormController]
	postForms  *lru.Cache[string, *PostFormController]

	repo     *repository.Repository
	maxBytes int64
	log      *zap.Logger
}

func newViewState(
	repo *repository.Repository,
	projector *Projector,
	maxDrafts int,
	maxBytes int64,
	log *zap.Logger,
) (*ViewState, error) {
	movieForms, err := lru.New[string, *MovieFormController](maxDrafts)
	if err != nil {
		return nil, fmt.Errorf("movie form cache: %w", err)
	}
	postForms, err := lru.New[string, *PostFormController](maxDrafts)
	if err != nil {
		return nil, fmt.Errorf("post form cache: %w", err)
	}

	return &ViewState{
		Movies: NewListController(
			"movie",
			func(ctx context.Context) ([]entity.Movie, error) {
				return repo.Movie.FindAll(ctx, nil)
			},
			repo.Movie.Delete,
			projector,
			log,
		),
		Posts: NewListController(
			"post",
			repo.Post.FindAll,
			repo.Post.Delete,
			projector,
			log,
		),
		movieForms: movieForms,
		postForms:  postForms,
		repo:       repo,
		maxBytes:   maxBytes,
		log:        log,
	}, nil
}

// OpenMovieForm starts a form (create when id is empty) and returns the draft
// id that addresses it. The oldest draft is dropped past the per-session cap.
func (s *ViewState) OpenMovieForm(id string) (string, *MovieFormController) {
	draftID := utils.GenerateUUIDString()
	form := NewMovieFormController(s.repo.Movie, id, s.maxBytes, s.log)
	s.movieForms.Add(draftID, form)
	return draftID, form
}

func (s *ViewState) MovieForm(draftID string) (*MovieFormController, bool) {
	return s.movieForms.Get(draftID)
}

func (s *ViewState) CloseMovieForm(draftID string) {
	s.movieForms.Remove(draftID)
}

func (s *ViewState) OpenPostForm(id string) (string, *PostFormController) {
	draftID := utils.GenerateUUIDString()
	form := NewPostFormController(s.repo.Post, id, s.maxBytes, s.log)
	s.postForms.Add(draftID, form)
	return draftID, form
}

func (s *ViewState) PostForm(draftID string) (*PostFormController, bool) {
	return s.postForms.Get(draftID)
}

func (s *ViewState) ClosePostForm(draftID string) {
	s.postForms.Remove(draftID)
}

// ViewStore keeps a ViewState per session id. A session untouched for the
// configured TTL expires and the least recently used are evicted past the
// size cap.
type ViewStore struct {
	mu        sync.Mutex
	views     *expirable.LRU[string, *ViewState]
	repo      *repository.Repository
	projector *Projector
	maxDrafts int
	maxBytes  int64
	log       *zap.Logger
}

func NewViewStore(repo *repository.Repository, config *utils.Config, log *zap.Logger) *ViewStore {
	log = log.With(zap.String("service", "view_store"))

	maxDrafts := config.View.MaxDrafts
	if maxDrafts <= 0 {
		maxDrafts = 1
	}

	onEvict := func(sid string, _ *ViewState) {
		log.Debug("View state evicted", zap.String("session_id", sid))
	}

	return &ViewStore{
		views:     expirable.NewLRU[string, *ViewState](config.View.CacheSize, onEvict, config.View.TTL),
		repo:      repo,
		projector: NewProjector(config.View.Locale),
		maxDrafts: maxDrafts,
		maxBytes:  config.API.MaxUploadBytes,
		log:       log,
	}
}

// Get returns the session's state, creating it on first use. Every hit
// restarts the entry's TTL.
func (s *ViewStore) Get(sid string) (*ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.views.Get(sid); ok {
		// expirable.LRU.Get keeps the original deadline; Add renews it.
		s.views.Add(sid, state)
		return state, nil
	}

	state, err := newViewState(s.repo, s.projector, s.maxDrafts, s.maxBytes, s.log)
	if err != nil {
		return nil, err
	}
	s.views.Add(sid, state)

	s.log.Debug("View state created", zap.String("session_id", sid))
	return state, nil
}

func (s *ViewStore) Len() int {
	return s.views.Len()
}
