// Package readme obtains the README of a project as HTML: the GitHub
// rendered version first, the raw markup through the CORS proxy second.
package readme

import (
	"context"
	"errors"
	"fmt"

	"github.com/jakoblorz/go-projectpage/internal/github"
	"github.com/jakoblorz/go-projectpage/internal/markdown"
	"github.com/jakoblorz/go-projectpage/internal/models"
	"github.com/jakoblorz/go-projectpage/internal/proxy"
)

var (
	ErrReadmeUnavailable = errors.New("readme unavailable")
)

// Source tells which path produced a Result
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

// Result is a README ready to be placed in the content container
type Result struct {
	HTML   string
	Source Source

	// PrimaryErr is set when the fallback path was taken
	PrimaryErr error
}

// Fetcher runs the primary fetch and, if it fails, exactly one fallback
type Fetcher struct {
	gh        github.ReadmeClient
	raw       proxy.RawFetcher
	converter *markdown.Converter

	// sanitizePrimary passes GitHub's HTML through the converter's policy
	sanitizePrimary bool
}

// NewFetcher creates a Fetcher
func NewFetcher(gh github.ReadmeClient, raw proxy.RawFetcher, converter *markdown.Converter) *Fetcher {
	return &Fetcher{
		gh:        gh,
		raw:       raw,
		converter: converter,
	}
}

// WithSanitizedPrimary makes the primary body go through the same
// sanitization policy as converted markup.
func (f *Fetcher) WithSanitizedPrimary(enabled bool) *Fetcher {
	f.sanitizePrimary = enabled
	return f
}

// Fetch returns the README of p. The primary body is returned verbatim
// unless sanitization was requested. When both paths fail the error wraps
// ErrReadmeUnavailable together with both causes.
func (f *Fetcher) Fetch(ctx context.Context, p models.Project) (*Result, error) {
	html, primaryErr := f.gh.GetRenderedReadme(ctx, p.Org, p.Name, p.Ref)
	if primaryErr == nil {
		if f.sanitizePrimary {
			html = f.converter.Sanitize(html)
		}
		return &Result{HTML: html, Source: SourcePrimary}, nil
	}

	raw, err := f.raw.FetchRaw(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: primary: %w; fallback: %w", ErrReadmeUnavailable, p.FullName(), primaryErr, err)
	}

	converted, err := f.converter.Convert(raw)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: primary: %w; fallback: %w", ErrReadmeUnavailable, p.FullName(), primaryErr, err)
	}

	return &Result{HTML: converted, Source: SourceFallback, PrimaryErr: primaryErr}, nil
}
