package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client implements ReadmeClient using the real GitHub API
type Client struct {
	client *github.Client
}

// ClientOptions configures a Client. Zero values select the public API,
// anonymous access and DefaultUserAgent.
type ClientOptions struct {
	Token     string
	UserAgent string
	BaseURL   string
}

// NewClient creates a new GitHub API client
func NewClient(opts ClientOptions) (*Client, error) {
	var httpClient *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(httpClient)

	gh.UserAgent = DefaultUserAgent
	if opts.UserAgent != "" {
		gh.UserAgent = opts.UserAgent
	}

	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		gh.BaseURL = base
	}

	return &Client{client: gh}, nil
}

// TokenFromEnv returns GH_TOKEN or GITHUB_TOKEN, in that order.
// An empty result means anonymous access.
func TokenFromEnv() string {
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

func (c *Client) GetRenderedReadme(ctx context.Context, owner, repo, ref string) (string, error) {
	u := fmt.Sprintf("repos/%s/%s/readme", owner, repo)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	req, err := c.client.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build readme request: %w", err)
	}
	req.Header.Set("Accept", HTMLMediaType)

	// Do copies the body into buf when v is an io.Writer and turns
	// non-2xx responses into *github.ErrorResponse.
	var buf bytes.Buffer
	resp, err := c.client.Do(ctx, req, &buf)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("failed to get readme of %s/%s@%s: %w", owner, repo, ref, ErrReadmeNotFound)
		}
		return "", fmt.Errorf("failed to get readme of %s/%s@%s: %w", owner, repo, ref, err)
	}

	return buf.String(), nil
}
