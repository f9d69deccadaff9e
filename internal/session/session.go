package session

import (
	"strings"
	"sync"
	"time"

	"github.com/dmorgan81/zimage/internal/config"
	"github.com/dmorgan81/zimage/internal/studio"
)

// Settings is the configuration surface a user edits in the sidebar.
type Settings struct {
	BaseURL        string
	Credential     string
	Seed           int64
	UseRandomSeed  bool
	GalleryColumns int
}

func (s Settings) HasCredential() bool {
	return s.Credential != ""
}

// Session is the state of one browser session: its controller, history and settings.
type Session struct {
	ID         string
	Controller *studio.Controller

	mu       sync.Mutex
	settings Settings
	notices  []studio.Notice
	lastSeen time.Time

	// the server default credential is only sent to the server default base URL
	inherited      bool
	defaultBaseURL string
}

const maxNotices = 5

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update applies fn to the settings. Gallery columns are kept within bounds.
func (s *Session) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.settings.Credential
	fn(&s.settings)
	if s.settings.Credential != before {
		s.inherited = false
	}
	s.settings.GalleryColumns = config.ClampColumns(s.settings.GalleryColumns)
	return s.settings
}

// Submission builds a controller submission from the prompt and current settings.
// An inherited credential is withheld when the base URL was pointed elsewhere.
func (s *Session) Submission(prompt string) studio.Submission {
	s.mu.Lock()
	settings := s.settings
	credential := settings.Credential
	if s.inherited && !sameEndpoint(settings.BaseURL, s.defaultBaseURL) {
		credential = ""
	}
	s.mu.Unlock()

	return studio.Submission{
		Prompt:     prompt,
		Seed:       studio.SeedConfig{Value: settings.Seed, Random: settings.UseRandomSeed},
		BaseURL:    settings.BaseURL,
		Credential: credential,
	}
}

func sameEndpoint(a, b string) bool {
	return strings.EqualFold(strings.TrimRight(strings.TrimSpace(a), "/"), strings.TrimRight(strings.TrimSpace(b), "/"))
}

// Flash queues a notice for the next page render. Only the most recent few are kept.
func (s *Session) Flash(n studio.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

// TakeNotices returns the pending notices in arrival order and clears them.
func (s *Session) TakeNotices() []studio.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
