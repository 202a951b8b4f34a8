package wire

import (
	"fmt"
	"net/http"

	"catalog-web/internal/adaptor"
	"catalog-web/internal/data/repository"
	"catalog-web/internal/usecase"
	"catalog-web/pkg/middleware"
	"catalog-web/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router
func Wiring(
	repo *repository.Repository,
	store sessions.Store,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	render, err := adaptor.NewRenderer(config.App.Name, logger)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, store, render, config, logger)

	router := setupRouter(handler, service, store, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	store sessions.Store,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Page not found")
	})

	// Infrastructure endpoints carry no session
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]int{"sessions": service.Views.Len()})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", adaptor.Static()))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(store, logger))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/movies", http.StatusFound)
		})

		wireMovie(r, handler.Movies, handler.MovieForm)
		wirePost(r, handler.Posts, handler.PostForm)
	})

	return r
}
