package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jakoblorz/go-projectpage/internal/config"
	"github.com/jakoblorz/go-projectpage/internal/github"
	"github.com/jakoblorz/go-projectpage/internal/markdown"
	"github.com/jakoblorz/go-projectpage/internal/proxy"
	"github.com/jakoblorz/go-projectpage/internal/readme"
	"github.com/jakoblorz/go-projectpage/internal/site"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, gh *github.MockClient, raw *proxy.MockFetcher) (*Server, *bytes.Buffer) {
	t.Helper()

	fetcher := readme.NewFetcher(gh, raw, markdown.NewConverter(markdown.Options{}))
	builder, err := site.NewBuilder(fetcher, site.Options{NoticeMode: config.NoticeOnFailure, Contact: "ops@example.org"})
	require.NoError(t, err)

	var logs bytes.Buffer
	return New(builder, "cancerit", "master", log.New(&logs, "", 0)), &logs
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Healthz(t *testing.T) {
	s, _ := newTestServer(t, github.NewMockClient(), proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestServer_BrowserAssets_NoUpstreamFetch(t *testing.T) {
	gh := github.NewMockClient()
	raw := proxy.NewMockFetcher()
	s, _ := newTestServer(t, gh, raw)

	for _, path := range []string{"/favicon.ico", "/robots.txt"} {
		rec := get(t, s.Router(), http.MethodGet, path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	require.Empty(t, gh.Calls())
	require.Zero(t, raw.CallCount())
}

func TestServer_ProjectNamedHealthz(t *testing.T) {
	gh := github.NewMockClient()
	gh.SetReadme("cancerit", "healthz", "master", "<p>health checks</p>")
	s, _ := newTestServer(t, gh, proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodGet, "/healthz/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<p>health checks</p>")
	require.Equal(t, []string{"cancerit/healthz@master"}, gh.Calls())
}

func TestServer_ProjectPage_Primary(t *testing.T) {
	gh := github.NewMockClient()
	gh.SetReadme("cancerit", "cgpPindel", "master", "<article>pindel readme</article>")
	s, logs := newTestServer(t, gh, proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodGet, "/cgpPindel/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "primary", rec.Header().Get("X-Readme-Source"))

	body := rec.Body.String()
	require.Contains(t, body, `<div id="content"><article>pindel readme</article></div>`)
	require.Contains(t, body, "<title>cgpPindel</title>")
	require.Contains(t, body, `href="https://github.com/cancerit/cgpPindel/zipball/master"`)
	require.NotContains(t, body, "fail-over")
	require.Contains(t, logs.String(), "project=cgpPindel source=primary")
}

func TestServer_ProjectPage_DeepPath(t *testing.T) {
	gh := github.NewMockClient()
	gh.SetReadme("cancerit", "VAGrENT", "master", "<p>vagrent</p>")
	s, _ := newTestServer(t, gh, proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodGet, "/VAGrENT/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<title>VAGrENT</title>")
	require.Equal(t, []string{"cancerit/VAGrENT@master"}, gh.Calls())
}

func TestServer_ProjectPage_BothFail(t *testing.T) {
	raw := proxy.NewMockFetcher()
	raw.FetchRawError = errors.New("proxy down")
	s, logs := newTestServer(t, github.NewMockClient(), raw)

	rec := get(t, s.Router(), http.MethodGet, "/cgpPindel/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "none", rec.Header().Get("X-Readme-Source"))

	body := rec.Body.String()
	require.Contains(t, body, "Loading README for <projectname>cgpPindel</projectname>")
	require.Contains(t, body, "mailto:ops@example.org")
	require.Contains(t, logs.String(), "readme unavailable")
}

func TestServer_ProjectPage_Head(t *testing.T) {
	gh := github.NewMockClient()
	gh.SetReadme("cancerit", "cgpPindel", "master", "<p>x</p>")
	s, _ := newTestServer(t, gh, proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodHead, "/cgpPindel/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("Content-Length"))
}

func TestServer_Root(t *testing.T) {
	s, _ := newTestServer(t, github.NewMockClient(), proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodGet, "/")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, github.NewMockClient(), proxy.NewMockFetcher())

	rec := get(t, s.Router(), http.MethodPost, "/cgpPindel/")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestServer_Serve_Shutdown(t *testing.T) {
	gh := github.NewMockClient()
	gh.SetReadme("cancerit", "cgpPindel", "master", "<p>served</p>")
	s, _ := newTestServer(t, gh, proxy.NewMockFetcher())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/cgpPindel/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(body), "<p>served</p>")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
