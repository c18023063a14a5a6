package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// NewDiskv returns a KV backed by diskv rooted at basePath. Each namespace is
// a directory and each name a file inside it. Writes go through a temp
// directory and a rename, so a crash mid-write leaves the previous value
// readable. There is no read cache, since another process may rewrite a value.
func NewDiskv(basePath string) *DiskvKV {
	return &DiskvKV{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, ".tmp"),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}
}

// DiskvKV is the default on-disk backend.
type DiskvKV struct {
	d        *diskv.Diskv
	basePath string
}

func (p *DiskvKV) Read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *DiskvKV) Write(key string, val []byte) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := p.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *DiskvKV) Erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// BasePath reports the directory the backend writes into.
func (p *DiskvKV) BasePath() string {
	return p.basePath
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
