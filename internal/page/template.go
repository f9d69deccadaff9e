package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/dmorgan81/zimage/internal/history"
	"github.com/dmorgan81/zimage/internal/log"
	"github.com/dmorgan81/zimage/internal/session"
	"github.com/dmorgan81/zimage/internal/studio"
	"github.com/samber/do"
	"github.com/samber/lo"
)

//go:embed assets/index.html
var indexTmpl string

type Params struct {
	Settings   session.Settings
	Count      int
	Rows       [][]history.Record
	Generating bool
	Notices    []studio.Notice
}

// NewParams lays the session's history out in rows of the configured column count.
func NewParams(s *session.Session) Params {
	settings := s.Settings()
	items := s.Controller.History().Items()
	return Params{
		Settings:   settings,
		Count:      len(items),
		Rows:       Gallery(items, settings.GalleryColumns),
		Generating: s.Controller.IsGenerating(),
		Notices:    s.TakeNotices(),
	}
}

func Gallery(items []history.Record, columns int) [][]history.Record {
	if len(items) == 0 {
		return nil
	}
	return lo.Chunk(items, lo.Max([]int{columns, 1}))
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(*do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("index").Parse(indexTmpl))
	})

	log := log.FromContextOrDiscard(ctx).WithGroup("templator")
	log.Debug("rendering page", "count", params.Count, "generating", params.Generating)

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
