package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jakoblorz/go-projectpage/internal/config"
	"github.com/jakoblorz/go-projectpage/internal/filesystem"
	"github.com/jakoblorz/go-projectpage/internal/github"
	"github.com/jakoblorz/go-projectpage/internal/markdown"
	"github.com/jakoblorz/go-projectpage/internal/page"
	"github.com/jakoblorz/go-projectpage/internal/proxy"
	"github.com/jakoblorz/go-projectpage/internal/readme"
	"github.com/jakoblorz/go-projectpage/internal/site"
)

// app carries the dependencies shared by all commands. cfg is filled in
// by the root command before any subcommand runs.
type app struct {
	fs       filesystem.FileSystem
	ghClient github.ReadmeClient
	raw      proxy.RawFetcher

	cfgPath string
	cfg     *config.Config
}

// flag name -> config key
var boundFlags = map[string]string{
	"org":      "org",
	"ref":      "ref",
	"proxy":    "proxy_base",
	"template": "template",
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v := viper.New()
	if a.cfgPath != "" {
		v.SetConfigFile(a.cfgPath)
	}
	if err := config.Load(v); err != nil {
		return err
	}

	for flag, key := range boundFlags {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) newBuilder() (*site.Builder, error) {
	cfg := a.cfg

	gh := a.ghClient
	if gh == nil {
		client, err := github.NewClient(github.ClientOptions{
			Token:     cfg.GitHubToken,
			UserAgent: cfg.UserAgent,
			BaseURL:   cfg.APIBaseURL,
		})
		if err != nil {
			return nil, err
		}
		gh = client
	}

	raw := a.raw
	if raw == nil {
		raw = proxy.NewFetcher(cfg.ProxyBase, nil)
	}

	converter := markdown.NewConverter(markdown.Options{
		Sanitize:         cfg.Sanitize,
		StripFrontMatter: cfg.StripFrontMatter,
	})
	fetcher := readme.NewFetcher(gh, raw, converter).WithSanitizedPrimary(cfg.Sanitize)

	tpl, err := page.LoadTemplate(a.fs, cfg.Template)
	if err != nil {
		return nil, err
	}

	return site.NewBuilder(fetcher, site.Options{
		Template:       tpl,
		NoticeTemplate: cfg.NoticeTemplate,
		NoticeMode:     cfg.NoticeMode,
		Contact:        cfg.Contact,
	})
}
