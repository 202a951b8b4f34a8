package adaptor

import (
	"errors"
	"net/http"

	"catalog-web/internal/usecase"
	"catalog-web/pkg/middleware"
	"catalog-web/pkg/utils"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

var errNoSession = errors.New("request carries no session id")

// sessionHelper resolves a request's view state and carries flash banners
// across redirects.
type sessionHelper struct {
	store sessions.Store
	views *usecase.ViewStore
	log   *zap.Logger
}

func (s *sessionHelper) viewState(r *http.Request) (*usecase.ViewState, error) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		return nil, errNoSession
	}
	return s.views.Get(sid)
}

func (s *sessionHelper) addFlash(w http.ResponseWriter, r *http.Request, message string) {
	session, err := s.store.Get(r, middleware.SessionName)
	if err != nil {
		s.log.Debug("Session cookie unreadable while flashing", zap.Error(err))
	}
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		s.log.Warn("Failed to save flash", zap.Error(err))
	}
}

// flashes pops the pending banners. Must run before anything is written.
func (s *sessionHelper) flashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := s.store.Get(r, middleware.SessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		s.log.Warn("Failed to clear flashes", zap.Error(err))
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// redirect is the post/redirect/get step after every action.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
