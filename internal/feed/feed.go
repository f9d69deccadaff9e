package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmorgan81/zimage/internal/history"
	"github.com/dmorgan81/zimage/internal/log"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Generator renders a session gallery as an RSS feed.
type Generator struct {
	now func() time.Time
}

func NewGenerator(*do.Injector) (*Generator, error) {
	return &Generator{now: time.Now}, nil
}

// Generate lists the records newest first; link is the absolute base of the studio.
func (g *Generator) Generate(ctx context.Context, link string, records []history.Record) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed")
	log.Info("generating rss feed", "items", len(records))

	updated := g.now()
	if len(records) > 0 {
		updated = records[0].CreatedAt
	}
	feed := feeds.Feed{
		Title:       "Z-Image Studio",
		Description: "Images generated in this session",
		Link:        &feeds.Link{Href: link},
		Updated:     updated,
	}
	feed.Items = lo.Map(records, func(r history.Record, _ int) *feeds.Item {
		download := fmt.Sprintf("%s/images/%s/download", link, r.ID)
		return &feeds.Item{
			Id:          r.ID,
			Title:       fmt.Sprintf("%s:%d", r.Prompt, r.Seed),
			Link:        &feeds.Link{Href: download},
			Description: fmt.Sprintf("%.2fs", r.DurationSeconds()),
			Created:     r.CreatedAt,
			Enclosure: &feeds.Enclosure{
				Url:    download,
				Length: strconv.Itoa(r.Size()),
				Type:   "image/png",
			},
		}
	})

	rss, err := feed.ToRss()
	return []byte(rss), err
}
