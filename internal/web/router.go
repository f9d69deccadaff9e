package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmorgan81/zimage/internal/feed"
	"github.com/dmorgan81/zimage/internal/log"
	"github.com/dmorgan81/zimage/internal/page"
	"github.com/dmorgan81/zimage/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
)

type Handler struct {
	sessions  *session.Manager
	templator *page.Templator
	feed      *feed.Generator
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		sessions:  do.MustInvoke[*session.Manager](i),
		templator: do.MustInvoke[*page.Templator](i),
		feed:      do.MustInvoke[*feed.Generator](i),
	}, nil
}

func NewRouter(i *do.Injector) (http.Handler, error) {
	h := do.MustInvoke[*Handler](i)
	return h.Routes(do.MustInvoke[*slog.Logger](i)), nil
}

func (h *Handler) Routes(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		withLogger(logger),
		middleware.Recoverer,
	)

	r.Get("/healthz", h.Health)
	r.Get("/", h.Home)
	r.Post("/settings", h.UpdateSettings)
	r.Post("/generate", h.Generate)
	r.Post("/history/clear", h.ClearHistory)
	r.Get("/images/{id}", h.Image)
	r.Get("/images/{id}/download", h.Download)
	r.Get("/feed.xml", h.Feed)

	return r
}

// withLogger stores a request-scoped logger in the context and logs each request.
func withLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With("request_id", middleware.GetReqID(r.Context()))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(log.NewContext(r.Context(), logger)))

			logger.Info("handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
