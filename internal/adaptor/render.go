package adaptor

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var assets embed.FS

var pageNames = []string{"list", "movie_form", "post_form", "error"}

// Page is the data every template receives.
type Page struct {
	AppName string
	Title   string
	Kind    string // "movies", "posts"; drives the navigation
	Flashes []string
	Body    any
}

// Renderer executes the embedded page templates inside the base layout.
type Renderer struct {
	appName string
	pages   map[string]*template.Template
	log     *zap.Logger
}

func NewRenderer(appName string, log *zap.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcMap()).ParseFS(assets,
			"templates/base.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		appName: appName,
		pages:   pages,
		log:     log.With(zap.String("component", "renderer")),
	}, nil
}

// Render buffers the page so a template failure can still turn into a 500.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := rd.pages[name]
	if !ok {
		rd.log.Error("Unknown template", zap.String("template", name))
		utils.ResponseInternalError(w, "Failed to render page")
		return
	}

	page.AppName = rd.appName

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		rd.log.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		utils.ResponseInternalError(w, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rd.log.Debug("Client went away during render", zap.Error(err))
	}
}

// RenderError shows the error page with a link back to the list of kind.
func (rd *Renderer) RenderError(w http.ResponseWriter, status int, kind, message string) {
	rd.Render(w, status, "error", Page{
		Title: http.StatusText(status),
		Kind:  kind,
		Body:  message,
	})
}

// Static serves the embedded stylesheet.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"safeImage": safeImage,
		"rating": func(score *float64) string {
			if score == nil {
				return "Not rated"
			}
			return utils.FormatNumber(*score)
		},
		"truncate": utils.Truncate,
	}
}

// safeImage lets previews through html/template: data URLs only for images,
// plain http(s) URLs otherwise. Anything else renders as an empty src.
func safeImage(src string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(src))
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "/"):
		return template.URL(src)
	default:
		return ""
	}
}
