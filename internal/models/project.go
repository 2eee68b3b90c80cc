package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultOrg is the GitHub organization whose repositories get a page.
	DefaultOrg = "cancerit"

	// DefaultRef is the branch used for READMEs and archive downloads.
	DefaultRef = "master"

	githubWebBase = "https://github.com"
	// DefaultAPIBase is the public GitHub REST API.
	DefaultAPIBase = "https://api.github.com/"
)

var (
	ErrNoProject = errors.New("no project in path")
)

// Project identifies a repository page. It is derived once from the
// request path and handed to everything that builds URLs or edits the page.
type Project struct {
	// Org is the GitHub organization (owner)
	Org string

	// Name is the repository name, taken from the first path segment
	Name string

	// Ref is the branch or tag the README and archives are taken from
	Ref string
}

// NewProject creates a Project, filling in the default ref when empty
func NewProject(org, name, ref string) Project {
	if ref == "" {
		ref = DefaultRef
	}
	return Project{
		Org:  org,
		Name: name,
		Ref:  ref,
	}
}

// ParseProjectPath returns the first "/"-delimited segment of a URL path.
//
//	/cgpPindel/            -> cgpPindel
//	/cgpPindel/index.html  -> cgpPindel
//	/                      -> ErrNoProject
func ParseProjectPath(path string) (string, error) {
	path = strings.TrimPrefix(path, "/")
	name, _, _ := strings.Cut(path, "/")
	if name == "" {
		return "", ErrNoProject
	}
	return name, nil
}

// ProjectFromPath combines ParseProjectPath and NewProject
func ProjectFromPath(org, ref, path string) (Project, error) {
	name, err := ParseProjectPath(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to derive project from %q: %w", path, err)
	}
	return NewProject(org, name, ref), nil
}

// FullName returns "org/name"
func (p Project) FullName() string {
	return p.Org + "/" + p.Name
}

// RepositoryURL is the web page of the repository
func (p Project) RepositoryURL() string {
	return fmt.Sprintf("%s/%s/%s", githubWebBase, p.Org, p.Name)
}

// ZipURL downloads the ref as a zip archive
func (p Project) ZipURL() string {
	return fmt.Sprintf("%s/zipball/%s", p.RepositoryURL(), p.Ref)
}

// TarURL downloads the ref as a tarball
func (p Project) TarURL() string {
	return fmt.Sprintf("%s/tarball/%s", p.RepositoryURL(), p.Ref)
}

// APIReadmeURL is the REST endpoint returning the README of the ref.
// An empty apiBase selects DefaultAPIBase.
func (p Project) APIReadmeURL(apiBase string) string {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return fmt.Sprintf("%s/repos/%s/%s/readme?ref=%s", strings.TrimSuffix(apiBase, "/"), p.Org, p.Name, p.Ref)
}

// RawReadmeURL points at the unrendered README.md of the ref
func (p Project) RawReadmeURL() string {
	return fmt.Sprintf("%s/raw/%s/README.md", p.RepositoryURL(), p.Ref)
}

// ProxiedRawReadmeURL prefixes RawReadmeURL with a CORS proxy base.
// The raw URL is appended as-is, the proxy expects it unescaped.
func (p Project) ProxiedRawReadmeURL(proxyBase string) string {
	return proxyBase + p.RawReadmeURL()
}
