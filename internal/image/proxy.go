package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmorgan81/zimage/internal/log"
	"github.com/samber/do"
)

const generatePath = "/proxy/generate"

type proxyRequest struct {
	Prompt string `json:"prompt"`
	Seed   int64  `json:"seed"`
}

type proxyResponse struct {
	Base64 string `json:"base64"`
}

// ProxyGenerator calls POST {base}/proxy/generate and decodes the base64 image it returns.
type ProxyGenerator struct {
	Client *http.Client
}

func NewProxyGenerator(i *do.Injector) (Generator, error) {
	return &ProxyGenerator{Client: do.MustInvoke[*http.Client](i)}, nil
}

func Endpoint(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + generatePath
}

func (g *ProxyGenerator) Generate(ctx context.Context, r Request) ([]byte, error) {
	endpoint := Endpoint(r.BaseURL)
	log := log.FromContextOrDiscard(ctx).WithGroup("proxy").With("endpoint", endpoint, "seed", r.Seed)
	log.Info("generating image")

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(proxyRequest{Prompt: r.Prompt, Seed: r.Seed})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+r.Credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client().Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn("endpoint returned failure", "status", resp.StatusCode)
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var out proxyResponse
	if err := json.Unmarshal(data, &out); err != nil || out.Base64 == "" {
		return nil, ErrMalformedResponse
	}
	img, err := base64.StdEncoding.DecodeString(out.Base64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	log.Info("received image", "bytes", len(img))
	return img, nil
}

func (g *ProxyGenerator) client() *http.Client {
	if g.Client == nil {
		return http.DefaultClient
	}
	return g.Client
}
