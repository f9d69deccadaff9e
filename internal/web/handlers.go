package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmorgan81/zimage/internal/log"
	"github.com/dmorgan81/zimage/internal/page"
	"github.com/dmorgan81/zimage/internal/session"
	"github.com/dmorgan81/zimage/internal/studio"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.FromRequest(w, r)
	html, err := h.templator.Template(r.Context(), page.NewParams(s))
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("rendering page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.FromRequest(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	seed, seedErr := strconv.ParseInt(strings.TrimSpace(r.PostForm.Get("seed")), 10, 64)
	columns, columnsErr := strconv.Atoi(r.PostForm.Get("columns"))
	s.Update(func(st *session.Settings) {
		if v := strings.TrimSpace(r.PostForm.Get("base_url")); v != "" {
			st.BaseURL = v
		}
		// a blank key field keeps the current key
		if v := strings.TrimSpace(r.PostForm.Get("api_key")); v != "" {
			st.Credential = v
		}
		if seedErr == nil {
			st.Seed = seed
		}
		if columnsErr == nil {
			st.GalleryColumns = columns
		}
		st.UseRandomSeed = r.PostForm.Get("random_seed") == "on"
	})
	if seedErr != nil && r.PostForm.Get("seed") != "" {
		s.Flash(studio.Notice{Level: studio.LevelWarning, Message: "Seed must be a whole number"})
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.FromRequest(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// an in-flight generation is not cancelled when the browser goes away
	ctx := context.WithoutCancel(r.Context())
	if _, err := s.Controller.Submit(ctx, s.Submission(r.PostForm.Get("prompt"))); err != nil {
		s.Flash(studio.NoticeFor(err))
	} else {
		s.Flash(studio.SuccessNotice())
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.FromRequest(w, r)
	s.Controller.History().Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	h.serveImage(w, r, false)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveImage(w, r, true)
}

func (h *Handler) serveImage(w http.ResponseWriter, r *http.Request, attachment bool) {
	s, ok := h.sessions.Lookup(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	rec, ok := s.Controller.History().Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(rec.Size()))
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename()))
	}
	_, _ = w.Write(rec.Image())
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Lookup(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	rss, err := h.feed.Generate(r.Context(), scheme+"://"+r.Host, s.Controller.History().Items())
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("generating feed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(rss)
}
