package out

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"niamverse/internal/modules/catalog/domain"
	catalogout "niamverse/internal/modules/catalog/port/out"
)

const maxCatalogBytes = 16 << 20

// HTTPSource performs the one-shot fetch of a remote catalog document.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

var _ catalogout.Source = (*HTTPSource)(nil)

func (s *HTTPSource) Location() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) (domain.RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	resp, err := s.client.Do(req)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("get %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.RawDocument{}, fmt.Errorf("get %s: unexpected status %s", s.url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("read body: %w", err)
	}
	return domain.RawDocument{Location: s.url, Format: domain.FormatFor(s.url), Data: data}, nil
}
