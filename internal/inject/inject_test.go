package inject

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmorgan81/zimage/internal/config"
	"github.com/dmorgan81/zimage/internal/session"
	"github.com/samber/do"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:         "https://api.example",
		APIKey:          "sk-env",
		Seed:            42,
		UseRandomSeed:   true,
		GalleryColumns:  2,
		GenerateTimeout: time.Minute,
		SessionTTL:      time.Hour,
	}
}

func TestSetupWiresRouter(t *testing.T) {
	injector := Setup(context.Background(), testConfig())
	defer func() { _ = injector.Shutdown() }()

	router := do.MustInvoke[http.Handler](injector)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || len(rec.Result().Cookies()) != 1 {
		t.Fatalf("home status %d cookies %d", rec.Code, len(rec.Result().Cookies()))
	}
}

func TestSetupDefaultCredentialFromEnv(t *testing.T) {
	injector := Setup(context.Background(), testConfig())
	defer func() { _ = injector.Shutdown() }()

	if got := do.MustInvokeNamed[string](injector, "credential"); got != "sk-env" {
		t.Fatalf("credential = %q", got)
	}
	s := do.MustInvoke[*session.Manager](injector).Create()
	if s.Settings().Credential != "sk-env" || s.Settings().BaseURL != "https://api.example" {
		t.Fatalf("session defaults not applied: %+v", s.Settings())
	}
}
