// Package proxy retrieves raw README markup through a public CORS proxy.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jakoblorz/go-projectpage/internal/models"
)

// DefaultBase is prefixed to the raw README URL
const DefaultBase = "http://crossorigin.me/"

var (
	ErrUnexpectedStatus = errors.New("unexpected status from proxy")
)

// RawFetcher returns the raw README markup of a project
type RawFetcher interface {
	FetchRaw(ctx context.Context, p models.Project) ([]byte, error)
}

// Fetcher implements RawFetcher over HTTP. No custom headers are sent.
type Fetcher struct {
	base   string
	client *http.Client
}

// NewFetcher creates a Fetcher. An empty base selects DefaultBase, a nil
// client selects http.DefaultClient.
func NewFetcher(base string, client *http.Client) *Fetcher {
	if base == "" {
		base = DefaultBase
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{base: base, client: client}
}

func (f *Fetcher) FetchRaw(ctx context.Context, p models.Project) ([]byte, error) {
	target := p.ProxiedRawReadmeURL(f.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build proxy request for %s: %w", p.FullName(), err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	return body, nil
}
