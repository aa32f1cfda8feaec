// ABOUTME: Prompt template provider with a simple get(name) -> text contract
// ABOUTME: FileProvider reads templates fresh from disk on every call
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider resolves a named system-prompt template to its text.
type Provider interface {
	Get(name string) (string, error)
}

// FileProvider loads templates from <dir>/<name>.txt. Every Get re-reads
// the file, so template edits take effect without a restart. Caching is a
// policy choice left to alternative implementations.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a provider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Get reads the named template from disk, trimmed of surrounding whitespace.
func (p *FileProvider) Get(name string) (string, error) {
	path := filepath.Join(p.dir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading prompt template %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// StaticProvider serves templates from an in-memory map. Used in tests.
type StaticProvider map[string]string

// Get returns the named template or an error when it is absent.
func (p StaticProvider) Get(name string) (string, error) {
	text, ok := p[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", name)
	}
	return text, nil
}
