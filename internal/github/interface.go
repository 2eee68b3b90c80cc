package github

import (
	"context"
	"errors"
)

// ReadmeClient provides an abstraction over the GitHub README endpoint
type ReadmeClient interface {
	// GetRenderedReadme returns the README of owner/repo at ref, rendered
	// to HTML by GitHub. The body is returned exactly as received.
	GetRenderedReadme(ctx context.Context, owner, repo, ref string) (string, error)
}

var (
	// ErrReadmeNotFound is returned when the repository has no README at ref
	ErrReadmeNotFound = errors.New("readme not found")
)

const (
	// HTMLMediaType asks the contents API for GitHub-rendered HTML
	HTMLMediaType = "application/vnd.github.3.html"

	// DefaultUserAgent identifies the client on the primary request
	DefaultUserAgent = "CancerIT"
)
