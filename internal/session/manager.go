package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/dmorgan81/zimage/internal/config"
	"github.com/dmorgan81/zimage/internal/history"
	"github.com/dmorgan81/zimage/internal/image"
	"github.com/dmorgan81/zimage/internal/studio"
	"github.com/google/uuid"
	"github.com/samber/do"
)

const CookieName = "zimage_session"

// Manager hands every browser its own Session. Sessions live in memory only
// and are dropped once idle for longer than the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	defaults Settings
	ttl      time.Duration
	build    func() *studio.Controller
	now      func() time.Time
}

func NewManager(i *do.Injector) (*Manager, error) {
	cfg := do.MustInvoke[*config.Config](i)
	generator := do.MustInvoke[image.Generator](i)
	defaults := Settings{
		BaseURL:        cfg.BaseURL,
		Credential:     do.MustInvokeNamed[string](i, "credential"),
		Seed:           cfg.Seed,
		UseRandomSeed:  cfg.UseRandomSeed,
		GalleryColumns: cfg.GalleryColumns,
	}
	return New(defaults, cfg.SessionTTL, func() *studio.Controller {
		return studio.NewController(generator, history.NewStore(), cfg.GenerateTimeout)
	}), nil
}

func New(defaults Settings, ttl time.Duration, build func() *studio.Controller) *Manager {
	defaults.GalleryColumns = config.ClampColumns(defaults.GalleryColumns)
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: defaults,
		ttl:      ttl,
		build:    build,
		now:      time.Now,
	}
}

// Get returns the live session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	s, ok := m.sessions[id]
	if ok {
		s.touch(now)
	}
	return s, ok
}

func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{
		ID:             uuid.NewString(),
		Controller:     m.build(),
		settings:       m.defaults,
		lastSeen:       m.now(),
		inherited:      m.defaults.Credential != "",
		defaultBaseURL: m.defaults.BaseURL,
	}
	m.sessions[s.ID] = s
	return s
}

// Lookup resolves the session named by the request cookie without creating one.
func (m *Manager) Lookup(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return m.Get(c.Value)
}

// FromRequest resolves the session named by the request cookie, creating a
// new one and setting the cookie when there is none.
func (m *Manager) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	if s, ok := m.Lookup(r); ok {
		return s
	}
	s := m.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep drops idle sessions; a session with a generation in flight is kept.
func (m *Manager) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl && !s.Controller.IsGenerating() {
			delete(m.sessions, id)
		}
	}
}
