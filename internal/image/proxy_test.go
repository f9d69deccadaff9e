package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestProxyGeneratorSuccess(t *testing.T) {
	want := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/proxy/generate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %s", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload["prompt"] != "a kitten" || payload["seed"] != float64(42) || len(payload) != 2 {
			t.Errorf("unexpected payload: %v", payload)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"base64": base64.StdEncoding.EncodeToString(want)})
	}))
	defer ts.Close()

	g := &ProxyGenerator{Client: ts.Client()}
	got, err := g.Generate(context.Background(), Request{
		BaseURL:    ts.URL + "/",
		Credential: "test-key",
		Prompt:     "a kitten",
		Seed:       42,
		Timeout:    time.Minute,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("image mismatch: got %v want %v", got, want)
	}
}

func TestProxyGeneratorRemoteFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer ts.Close()

	g := &ProxyGenerator{Client: ts.Client()}
	_, err := g.Generate(context.Background(), Request{BaseURL: ts.URL, Credential: "k", Prompt: "p"})

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.StatusCode != http.StatusInternalServerError || remote.Body != "internal error" {
		t.Fatalf("unexpected remote error: %+v", remote)
	}
}

func TestProxyGeneratorMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"missing field": `{}`,
		"empty field":   `{"base64": ""}`,
		"not json":      `<html>ok</html>`,
		"bad base64":    `{"base64": "***"}`,
	} {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer ts.Close()

			g := &ProxyGenerator{Client: ts.Client()}
			_, err := g.Generate(context.Background(), Request{BaseURL: ts.URL, Credential: "k", Prompt: "p"})
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestProxyGeneratorTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	g := &ProxyGenerator{Client: ts.Client()}
	start := time.Now()
	_, err := g.Generate(context.Background(), Request{
		BaseURL:    ts.URL,
		Credential: "k",
		Prompt:     "p",
		Timeout:    50 * time.Millisecond,
	})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !netErr.Timeout() {
		t.Fatalf("expected timeout, got %v", netErr)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("timeout not enforced: %v", elapsed)
	}
}

func TestProxyGeneratorConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	g := &ProxyGenerator{}
	_, err := g.Generate(context.Background(), Request{BaseURL: url, Credential: "sk-secret", Prompt: "p"})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if strings.Contains(err.Error(), "sk-secret") {
		t.Fatalf("credential leaked in error: %v", err)
	}
}

func TestEndpoint(t *testing.T) {
	if got := Endpoint("https://api.example/"); got != "https://api.example/proxy/generate" {
		t.Fatalf("endpoint %q", got)
	}
	if got := Endpoint("https://api.example"); got != "https://api.example/proxy/generate" {
		t.Fatalf("endpoint %q", got)
	}
}
