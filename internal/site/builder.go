// Package site assembles a project page: README fetch and personalization
// run side by side and are combined into one document.
package site

import (
	"context"
	"fmt"

	"github.com/jakoblorz/go-projectpage/internal/config"
	"github.com/jakoblorz/go-projectpage/internal/models"
	"github.com/jakoblorz/go-projectpage/internal/page"
	"github.com/jakoblorz/go-projectpage/internal/readme"
)

// ReadmeFetcher is satisfied by *readme.Fetcher
type ReadmeFetcher interface {
	Fetch(ctx context.Context, p models.Project) (*readme.Result, error)
}

// Builder produces personalized pages
type Builder struct {
	template   []byte
	fetcher    ReadmeFetcher
	notice     *page.Notice
	noticeMode config.NoticeMode
	contact    string
}

// Options configures a Builder
type Options struct {
	Template       []byte
	NoticeTemplate string
	NoticeMode     config.NoticeMode
	Contact        string
}

// NewBuilder creates a Builder. An empty template selects the built-in page;
// any other template must contain a #content element.
func NewBuilder(fetcher ReadmeFetcher, opts Options) (*Builder, error) {
	notice, err := page.ParseNotice(opts.NoticeTemplate)
	if err != nil {
		return nil, err
	}

	tpl := opts.Template
	if len(tpl) == 0 {
		tpl = page.DefaultTemplate()
	}
	doc, err := page.ParseBytes(tpl)
	if err != nil {
		return nil, err
	}
	if _, err := doc.ContentHTML(); err != nil {
		return nil, fmt.Errorf("page template: %w", err)
	}

	mode := opts.NoticeMode
	if mode == "" {
		mode = config.NoticeAlways
	}

	return &Builder{
		template:   tpl,
		fetcher:    fetcher,
		notice:     notice,
		noticeMode: mode,
		contact:    opts.Contact,
	}, nil
}

// Page is a built page together with how its README was obtained
type Page struct {
	Project  models.Project
	Document *page.Document
	Source   readme.Source

	// FetchErr is set when neither fetch produced a README. The content
	// container then keeps whatever the template put there.
	FetchErr error
}

type fetchOutcome struct {
	result *readme.Result
	err    error
}

// Build fetches the README of p and personalizes a fresh copy of the
// template. The returned error only covers template and rendering
// problems; a missing README is reported through Page.FetchErr.
func (b *Builder) Build(ctx context.Context, p models.Project) (*Page, error) {
	fetched := make(chan fetchOutcome, 1)
	go func() {
		res, err := b.fetcher.Fetch(ctx, p)
		fetched <- fetchOutcome{result: res, err: err}
	}()

	doc, err := page.ParseBytes(b.template)
	if err != nil {
		return nil, err
	}
	doc.Personalize(p)

	var outcome fetchOutcome
	select {
	case outcome = <-fetched:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build of %s cancelled: %w", p.FullName(), err)
	}

	built := &Page{Project: p, Document: doc, Source: readme.SourceNone, FetchErr: outcome.err}
	if outcome.err == nil {
		if err := doc.SetContent(outcome.result.HTML); err != nil {
			return nil, fmt.Errorf("failed to place readme of %s: %w", p.FullName(), err)
		}
		built.Source = outcome.result.Source
	}

	if b.showNotice(built.Source) {
		notice, err := b.notice.Execute(page.NoticeData{Project: p.Name, Contact: b.contact})
		if err != nil {
			return nil, err
		}
		if err := doc.ShowNotice(notice); err != nil {
			return nil, fmt.Errorf("failed to place notice: %w", err)
		}
	}

	return built, nil
}

func (b *Builder) showNotice(source readme.Source) bool {
	switch b.noticeMode {
	case config.NoticeOnFailure:
		return source != readme.SourcePrimary
	default:
		return true
	}
}
