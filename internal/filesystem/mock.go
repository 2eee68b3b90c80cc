package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string]*MockFile
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	IsDir   bool
}

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{Content: content, Mode: 0644}
	mfs.mkdirAll(filepath.Dir(cleanPath), 0755)
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mkdirAll(filepath.Clean(path), 0755)
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)

	// Parent directory must exist, as with os.WriteFile
	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if parent, exists := mfs.files[dir]; !exists || !parent.IsDir {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{Content: data, Mode: perm}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mkdirAll(filepath.Clean(path), perm)
	return nil
}

func (mfs *MockFileSystem) mkdirAll(cleanPath string, perm fs.FileMode) {
	current := ""
	for _, part := range strings.Split(cleanPath, string(filepath.Separator)) {
		if part == "" || part == "." {
			continue
		}
		if current == "" && filepath.IsAbs(cleanPath) {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if _, exists := mfs.files[current]; !exists {
			mfs.files[current] = &MockFile{Mode: perm | fs.ModeDir, IsDir: true}
		}
	}
}

func (mfs *MockFileSystem) Exists(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}
