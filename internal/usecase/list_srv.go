package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/internal/dto/response"
	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

type ListState string

const (
	ListLoading          ListState = "loading"
	ListReady            ListState = "ready"
	ListLoadError        ListState = "load_error"
	ListDeleteConfirming ListState = "delete_confirming"
	ListDeleting         ListState = "deleting"
)

var (
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrListBusy        = errors.New("list is busy")
)

// ListFetcher loads the full, unfiltered collection.
type ListFetcher[T entity.Record] func(ctx context.Context) ([]T, error)

// ListRemover deletes one record by id.
type ListRemover func(ctx context.Context, id string) error

// ListController owns a list page's collection, query criteria and delete
// confirmation. It is safe for concurrent use.
type ListController[T entity.Record] struct {
	noun      string // "movie", "post"
	fetch     ListFetcher[T]
	remove    ListRemover
	projector *Projector
	log       *zap.Logger

	mu         sync.Mutex
	state      ListState
	loaded     bool
	all        []T
	projection []T
	criteria   request.ListQuery
	errMsg     string
	target     *response.DeleteTarget
	confirmErr string
	// token increases with every Load; a response carrying an older token is dropped.
	token uint64
}

func NewListController[T entity.Record](
	noun string,
	fetch ListFetcher[T],
	remove ListRemover,
	projector *Projector,
	log *zap.Logger,
) *ListController[T] {
	return &ListController[T]{
		noun:      noun,
		fetch:     fetch,
		remove:    remove,
		projector: projector,
		log:       log.With(zap.String("service", noun+"_list")),
		state:     ListLoading,
		criteria:  request.DefaultListQuery(),
	}
}

// Load fetches the full collection and recomputes the projection. On failure
// the previous collection stays visible; only a failed first load leaves the
// list in ListLoadError.
func (c *ListController[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.token++
	token := c.token
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		c.log.Debug("Dropping stale list response",
			zap.Uint64("token", token),
			zap.Uint64("latest", c.token),
		)
		return nil
	}

	if err != nil {
		c.errMsg = utils.UserMessage(err, fmt.Sprintf("Failed to load %ss", c.noun))
		if !c.loaded {
			c.state = ListLoadError
		}
		c.log.Warn("Failed to load list", zap.Error(err))
		return err
	}

	c.all = items
	c.loaded = true
	c.errMsg = ""
	if c.state == ListLoading || c.state == ListLoadError {
		c.state = ListReady
	}
	c.reproject()

	c.log.Debug("List loaded", zap.Int("count", len(items)))
	return nil
}

// SetCriteria replaces the query criteria and recomputes the projection.
func (c *ListController[T]) SetCriteria(criteria request.ListQuery) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = criteria.Normalize()
	c.reproject()
}

func (c *ListController[T]) reproject() {
	c.projection = Project(c.projector, c.all, c.criteria)
}

// Loaded reports whether any load has succeeded yet.
func (c *ListController[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// RequestDelete opens the confirmation for the record with the given id.
func (c *ListController[T]) RequestDelete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == ListDeleting {
		return ErrListBusy
	}

	for _, item := range c.all {
		if item.RecordID() == id {
			c.target = &response.DeleteTarget{ID: id, Label: item.Label()}
			c.confirmErr = ""
			c.state = ListDeleteConfirming
			return nil
		}
	}

	return utils.NewNotFoundError(fmt.Sprintf("%s not found", strings.ToUpper(c.noun[:1])+c.noun[1:]))
}

// CancelDelete closes the confirmation without deleting anything.
func (c *ListController[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == ListDeleteConfirming {
		c.state = ListReady
		c.target = nil
		c.confirmErr = ""
	}
}

// ConfirmDelete deletes the pending target once ack matches its label.
// Exactly one delete is followed by exactly one reload, whatever the delete
// outcome, and the confirmation closes either way. The returned error is the
// delete failure, if any; a failed reload shows up in the list's own error.
func (c *ListController[T]) ConfirmDelete(ctx context.Context, ack string) error {
	c.mu.Lock()
	if c.state != ListDeleteConfirming || c.target == nil {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	target := *c.target
	if strings.TrimSpace(ack) != target.Label {
		c.confirmErr = fmt.Sprintf("Type %q to confirm", target.Label)
		c.mu.Unlock()
		return utils.NewValidationError(c.confirmErr)
	}
	c.state = ListDeleting
	c.mu.Unlock()

	deleteErr := c.remove(ctx, target.ID)
	if deleteErr != nil {
		c.log.Warn("Delete failed", zap.String("id", target.ID), zap.Error(deleteErr))
	} else {
		c.log.Info("Record deleted", zap.String("id", target.ID), zap.String("label", target.Label))
	}

	c.mu.Lock()
	c.state = ListReady
	c.target = nil
	c.confirmErr = ""
	c.mu.Unlock()

	_ = c.Load(ctx)

	return deleteErr
}

// Snapshot copies the current state for rendering.
func (c *ListController[T]) Snapshot() response.ListView[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := response.ListView[T]{
		State:        string(c.state),
		Loaded:       c.loaded,
		Items:        slices.Clone(c.projection),
		Total:        len(c.all),
		Genres:       Genres(c.projector, c.all),
		Criteria:     c.criteria,
		Error:        c.errMsg,
		ConfirmError: c.confirmErr,
	}
	if c.target != nil {
		target := *c.target
		view.DeleteTarget = &target
	}
	return view
}
