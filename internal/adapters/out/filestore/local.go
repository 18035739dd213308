// Package filestore keeps attachment bytes on the local file system.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// maxNameAttempts bounds the search for a free name when paths collide.
const maxNameAttempts = 100

// LocalStorage stores files below root. Paths handed out are slash separated
// and relative to root, so the database never holds host specific paths.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates root if it does not exist.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create files dir: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Store writes data under suggestedPath. If the name is taken a numeric
// suffix is added before the extension.
func (s *LocalStorage) Store(ctx context.Context, data []byte, suggestedPath string) (string, error) {
	rel, err := cleanPath(suggestedPath)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err = os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("create dir for %s: %w", rel, err)
	}

	ext := path.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return "", err
		}

		candidate := rel
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		}

		err = writeNew(filepath.Join(s.root, filepath.FromSlash(candidate)), data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write %s: %w", candidate, err)
		}
		return candidate, nil
	}

	return "", errs.NewConflictErrorWithCause("file", rel, errors.New("no free name left"))
}

func (s *LocalStorage) Retrieve(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := cleanPath(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewObjectNotFoundErrorWithCause("file", p, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}
	return data, nil
}

func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := cleanPath(p)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	return nil
}

// writeNew fails with fs.ErrExist instead of overwriting.
func writeNew(name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return err
	}
	return f.Close()
}

// cleanPath rejects paths that would leave the storage root.
func cleanPath(p string) (string, error) {
	rel := path.Clean(strings.ReplaceAll(strings.TrimSpace(p), "\\", "/"))
	if rel == "." || rel == "" || path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errs.NewValueIsInvalidErrorWithCause("file path", fmt.Errorf("%q is outside the storage", p))
	}
	return rel, nil
}
