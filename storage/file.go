package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/viant/afs"
	aurl "github.com/viant/afs/url"
)

const fileMode = 0o600

// FileStore persists each key as a separate object under a base URL.
// Any afs supported location works, a plain path stands for a local directory.
type FileStore struct {
	mu      sync.Mutex
	baseURL string
	fs      afs.Service
}

func (f *FileStore) objectURL(key string) string {
	return aurl.Join(f.baseURL, url.PathEscape(key))
}

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	URL := f.objectURL(key)
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil {
		return "", false, fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if !ok {
		return "", false, nil
	}
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return string(data), true, nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	URL := f.objectURL(key)
	if err := f.fs.Upload(ctx, URL, fileMode, bytes.NewReader([]byte(value))); err != nil {
		return fmt.Errorf("failed to write %v: %w", URL, err)
	}
	return nil
}

func (f *FileStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	URL := f.objectURL(key)
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil || !ok {
		return err
	}
	if err = f.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to remove %v: %w", URL, err)
	}
	return nil
}

// NewFile creates a storage keeping objects under baseURL
func NewFile(baseURL string) *FileStore {
	return &FileStore{baseURL: baseURL, fs: afs.New()}
}
