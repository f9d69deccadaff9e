package studio

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmorgan81/zimage/internal/history"
	"github.com/dmorgan81/zimage/internal/image"
	"github.com/dmorgan81/zimage/internal/log"
)

type State int

const (
	Idle State = iota
	Generating
)

func (s State) String() string {
	if s == Generating {
		return "generating"
	}
	return "idle"
}

type Submission struct {
	Prompt     string
	Seed       SeedConfig
	BaseURL    string
	Credential string
}

// Controller runs at most one generation at a time for a single session and
// records successful ones in its history.
type Controller struct {
	generator  image.Generator
	history    *history.Store
	timeout    time.Duration
	now        func() time.Time
	generating atomic.Bool
}

func NewController(generator image.Generator, store *history.Store, timeout time.Duration) *Controller {
	return &Controller{
		generator: generator,
		history:   store,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (c *Controller) History() *history.Store {
	return c.history
}

func (c *Controller) IsGenerating() bool {
	return c.generating.Load()
}

func (c *Controller) State() State {
	if c.IsGenerating() {
		return Generating
	}
	return Idle
}

// Submit validates the submission, makes exactly one generation call and
// appends the result to history on success. The controller is back to Idle
// when Submit returns, whatever the outcome.
func (c *Controller) Submit(ctx context.Context, sub Submission) (history.Record, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("controller")

	if sub.Credential == "" {
		return history.Record{}, ErrMissingCredential
	}
	if strings.TrimSpace(sub.Prompt) == "" {
		return history.Record{}, ErrEmptyPrompt
	}
	if !c.generating.CompareAndSwap(false, true) {
		log.Info("submission ignored while generating")
		return history.Record{}, ErrBusy
	}
	defer c.generating.Store(false)

	seed := ResolveSeed(sub.Seed, c.now())
	log = log.With("seed", seed)
	log.Info("starting generation")

	start := time.Now()
	img, err := c.generator.Generate(ctx, image.Request{
		BaseURL:    sub.BaseURL,
		Credential: sub.Credential,
		Prompt:     sub.Prompt,
		Seed:       seed,
		Timeout:    c.timeout,
	})
	if err != nil {
		log.Warn("generation failed", "error", err)
		return history.Record{}, err
	}

	rec := c.history.Append(sub.Prompt, img, seed, time.Since(start))
	log.Info("generation complete", "id", rec.ID, "duration", rec.Duration)
	return rec, nil
}
