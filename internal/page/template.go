package page

import (
	"fmt"
	"io/fs"

	"github.com/jakoblorz/go-projectpage/internal/filesystem"
)

// LoadTemplate reads a page template from path, or returns the built-in
// page when path is empty. The template must contain a #content element.
func LoadTemplate(fsys filesystem.FileSystem, path string) ([]byte, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}

	if !fsys.Exists(path) {
		return nil, fmt.Errorf("page template %s: %w", path, fs.ErrNotExist)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page template %s: %w", path, err)
	}

	doc, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if _, err := doc.ContentHTML(); err != nil {
		return nil, fmt.Errorf("page template %s: %w", path, err)
	}
	return data, nil
}
