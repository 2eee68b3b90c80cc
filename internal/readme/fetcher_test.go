package readme

import (
	"context"
	"errors"
	"testing"

	"github.com/jakoblorz/go-projectpage/internal/github"
	"github.com/jakoblorz/go-projectpage/internal/markdown"
	"github.com/jakoblorz/go-projectpage/internal/models"
	"github.com/jakoblorz/go-projectpage/internal/proxy"
	"github.com/stretchr/testify/require"
)

var pindel = models.NewProject("cancerit", "cgpPindel", "master")

func TestFetcher_PrimarySuccess(t *testing.T) {
	gh := github.NewMockClient()
	const body = "<article class=\"markdown-body\"><h1>cgpPindel</h1><script>x()</script></article>"
	gh.SetReadme("cancerit", "cgpPindel", "master", body)
	raw := proxy.NewMockFetcher()

	f := NewFetcher(gh, raw, markdown.NewConverter(markdown.Options{}))

	res, err := f.Fetch(context.Background(), pindel)
	require.NoError(t, err)
	require.Equal(t, SourcePrimary, res.Source)
	require.Equal(t, body, res.HTML)
	require.NoError(t, res.PrimaryErr)
	require.Zero(t, raw.CallCount(), "fallback must not run after a primary success")
}

func TestFetcher_PrimarySanitized(t *testing.T) {
	gh := github.NewMockClient()
	gh.SetReadme("cancerit", "cgpPindel", "master", "<p>hi</p><script>x()</script>")

	f := NewFetcher(gh, proxy.NewMockFetcher(), markdown.NewConverter(markdown.Options{Sanitize: true})).
		WithSanitizedPrimary(true)

	res, err := f.Fetch(context.Background(), pindel)
	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>", res.HTML)
}

func TestFetcher_Fallback(t *testing.T) {
	gh := github.NewMockClient()
	gh.GetRenderedReadmeError = errors.New("403 rate limit exceeded")

	raw := proxy.NewMockFetcher()
	raw.SetRaw(pindel, "# cgpPindel\n\nIndel caller.\n")

	converter := markdown.NewConverter(markdown.Options{})
	f := NewFetcher(gh, raw, converter)

	res, err := f.Fetch(context.Background(), pindel)
	require.NoError(t, err)
	require.Equal(t, SourceFallback, res.Source)
	require.EqualError(t, res.PrimaryErr, "403 rate limit exceeded")

	expected, err := converter.Convert([]byte("# cgpPindel\n\nIndel caller.\n"))
	require.NoError(t, err)
	require.Equal(t, expected, res.HTML)
	require.Equal(t, 1, raw.CallCount())
}

func TestFetcher_BothFail(t *testing.T) {
	gh := github.NewMockClient()
	raw := proxy.NewMockFetcher()
	raw.FetchRawError = errors.New("proxy down")

	f := NewFetcher(gh, raw, markdown.NewConverter(markdown.Options{}))

	res, err := f.Fetch(context.Background(), pindel)
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrReadmeUnavailable)
	require.ErrorIs(t, err, github.ErrReadmeNotFound)
	require.Contains(t, err.Error(), "proxy down")
	require.Equal(t, 1, raw.CallCount(), "exactly one fallback hop")
	require.Len(t, gh.Calls(), 1, "no retries of the primary")
}

func TestFetcher_FallbackKeepsFrontMatter(t *testing.T) {
	gh := github.NewMockClient()
	raw := proxy.NewMockFetcher()
	raw.SetRaw(pindel, "---\nauthor: cgp\n---\n# Title\n")

	f := NewFetcher(gh, raw, markdown.NewConverter(markdown.Options{}))

	res, err := f.Fetch(context.Background(), pindel)
	require.NoError(t, err)
	require.Equal(t, SourceFallback, res.Source)
	require.Contains(t, res.HTML, "<th>author</th>")
	require.Contains(t, res.HTML, "<td>cgp</td>")
	require.Contains(t, res.HTML, "<h1 id=\"title\">Title</h1>")
}
