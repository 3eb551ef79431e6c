package repository

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/pkg/errors"
)

var errInvalidKey = errors.New("invalid blob key")

// fsRepository keeps blobs under a local directory that the HTTP server also
// exposes at baseURL.
type fsRepository struct {
	baseDir string
	baseURL string
}

func NewFSRepository(baseDir, baseURL string) videos.BlobRepository {
	return &fsRepository{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (f *fsRepository) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimLeft(key, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(errInvalidKey, "%q", key)
	}
	return filepath.Join(f.baseDir, clean), nil
}

func (f *fsRepository) Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dst, err := f.path(key)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(err, "fsRepository.Store.MkdirAll")
	}
	file, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "fsRepository.Store.Create")
	}
	if _, err = io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(dst)
		return "", errors.Wrap(err, "fsRepository.Store.Copy")
	}
	if err = file.Close(); err != nil {
		return "", errors.Wrap(err, "fsRepository.Store.Close")
	}
	return f.URL(key), nil
}

func (f *fsRepository) Publish(ctx context.Context, key string, localPath string) (string, error) {
	dst, err := f.path(key)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(err, "fsRepository.Publish.MkdirAll")
	}
	if err = os.Rename(localPath, dst); err == nil {
		return f.URL(key), nil
	}

	// rename fails across devices, fall back to copying
	src, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "fsRepository.Publish.Open")
	}
	defer src.Close()
	return f.Store(ctx, key, src, -1, "video/mp4")
}

func (f *fsRepository) ListChildren(ctx context.Context, dir string) ([]string, error) {
	p, err := f.path(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "fsRepository.ListChildren.ReadDir")
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (f *fsRepository) Remove(ctx context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "fsRepository.Remove")
	}
	return nil
}

func (f *fsRepository) URL(key string) string {
	return f.baseURL + "/" + strings.TrimLeft(key, "/")
}

// ResolveInput maps a URL handed out by this repository back to the file on
// disk. Anything else is passed through for ffmpeg to open directly.
func (f *fsRepository) ResolveInput(ctx context.Context, location string) (string, error) {
	prefix := f.baseURL + "/"
	if !strings.HasPrefix(location, prefix) {
		return location, nil
	}
	p, err := f.path(strings.TrimPrefix(location, prefix))
	if err != nil {
		return "", err
	}
	if _, err = os.Stat(p); err != nil {
		return "", errors.Wrap(err, "fsRepository.ResolveInput.Stat")
	}
	return p, nil
}
