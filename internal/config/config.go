package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jakoblorz/go-projectpage/internal/github"
	"github.com/jakoblorz/go-projectpage/internal/models"
	"github.com/jakoblorz/go-projectpage/internal/page"
	"github.com/jakoblorz/go-projectpage/internal/proxy"
)

// NoticeMode decides when the fail-over notice is shown
type NoticeMode string

const (
	// NoticeAlways shows the notice on every page
	NoticeAlways NoticeMode = "always"
	// NoticeOnFailure shows it only when the primary fetch failed
	NoticeOnFailure NoticeMode = "on_failure"
)

// Config is the resolved configuration
type Config struct {
	Org            string
	Ref            string
	ProxyBase      string
	APIBaseURL     string
	UserAgent      string
	GitHubToken    string
	HTTPAddr       string
	Template       string
	Contact        string
	NoticeTemplate string
	NoticeMode     NoticeMode
	Sanitize       bool

	StripFrontMatter bool
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration keys, their defaults and meaning.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "org", Default: models.DefaultOrg, Comment: "GitHub organization owning the projects"},
		{Key: "ref", Default: models.DefaultRef, Comment: "Branch used for READMEs and archive links"},
		{Key: "proxy_base", Default: proxy.DefaultBase, Comment: "CORS proxy prefixed to the raw README URL"},
		{Key: "api_base_url", Default: models.DefaultAPIBase, Comment: "GitHub REST API base URL"},
		{Key: "user_agent", Default: github.DefaultUserAgent, Comment: "User-Agent sent to the GitHub API"},
		{Key: "github_token", Default: "", Comment: "Optional API token; GH_TOKEN/GITHUB_TOKEN are used when empty"},
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for serve"},
		{Key: "template", Default: "", Comment: "Page template path; empty uses the built-in page"},
		{Key: "contact", Default: page.DefaultContact, Comment: "Address shown in the fail-over notice"},
		{Key: "notice_template", Default: page.DefaultNoticeTemplate, Comment: "Fail-over notice template (text/template + sprig)"},
		{Key: "notice_mode", Default: string(NoticeAlways), Comment: "always | on_failure"},
		{Key: "sanitize", Default: false, Comment: "Sanitize README HTML with a UGC policy"},
		{Key: "strip_front_matter", Default: false, Comment: "Drop README front matter instead of rendering it as a table"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// Flags bound by the caller override all three.
func Load(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("projectpage")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "projectpage"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "projectpage"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// PROJECTPAGE_ORG, PROJECTPAGE_PROXY_BASE, ...
	v.SetEnvPrefix("projectpage")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// FromViper builds a validated Config
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Org:            strings.TrimSpace(v.GetString("org")),
		Ref:            strings.TrimSpace(v.GetString("ref")),
		ProxyBase:      v.GetString("proxy_base"),
		APIBaseURL:     v.GetString("api_base_url"),
		UserAgent:      v.GetString("user_agent"),
		GitHubToken:    v.GetString("github_token"),
		HTTPAddr:       v.GetString("http_addr"),
		Template:       v.GetString("template"),
		Contact:        v.GetString("contact"),
		NoticeTemplate: v.GetString("notice_template"),
		NoticeMode:     NoticeMode(strings.ToLower(strings.TrimSpace(v.GetString("notice_mode")))),
		Sanitize:       v.GetBool("sanitize"),

		StripFrontMatter: v.GetBool("strip_front_matter"),
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = github.TokenFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once
func (c *Config) Validate() error {
	var errs []error

	if c.Org == "" {
		errs = append(errs, errors.New("org is required"))
	}
	if c.Ref == "" {
		errs = append(errs, errors.New("ref is required"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if c.ProxyBase != "" && !isHTTPURL(c.ProxyBase) {
		errs = append(errs, fmt.Errorf("proxy_base %q is not an http(s) url", c.ProxyBase))
	}
	if c.APIBaseURL != "" && !isHTTPURL(c.APIBaseURL) {
		errs = append(errs, fmt.Errorf("api_base_url %q is not an http(s) url", c.APIBaseURL))
	}
	switch c.NoticeMode {
	case NoticeAlways, NoticeOnFailure:
	default:
		errs = append(errs, fmt.Errorf("notice_mode must be %q or %q, got %q", NoticeAlways, NoticeOnFailure, c.NoticeMode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
