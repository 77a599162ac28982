// Package images stores cover images as plain files in one flat directory.
//
// Names are bare file names: anything that could resolve outside the directory
// is rejected before the filesystem is touched. Uploads are written to a
// temporary file and renamed into place, so concurrent uploads to the same
// name are last-write-wins and readers never observe a partial file.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
)

// DefaultMaxSize is the upload cap used when none is configured (128 KiB).
const DefaultMaxSize int64 = 128 * 1024

const tempPrefix = ".upload-"

// Image is a file read from the store.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store reads and writes cover images under a single directory.
type Store struct {
	dir     string
	maxSize int64
	log     *zap.Logger
}

// NewStore returns a store rooted at dir. A non-positive maxSize falls back to DefaultMaxSize.
func NewStore(dir string, maxSize int64, log *zap.Logger) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, maxSize: maxSize, log: log}
}

// Dir returns the directory the store serves.
func (s *Store) Dir() string { return s.dir }

// MaxSize returns the upload cap in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// ValidateName rejects names that are empty, hidden, or could escape the directory.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", customerrors.ErrInvalidFileName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", customerrors.ErrInvalidFileName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: name contains a NUL byte", customerrors.ErrInvalidFileName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", customerrors.ErrInvalidFileName, name)
	case filepath.Base(name) != name || !filepath.IsLocal(name):
		return fmt.Errorf("%w: %q", customerrors.ErrInvalidFileName, name)
	}
	return nil
}

func (s *Store) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Read returns the file's bytes and detected content type.
func (s *Store) Read(ctx context.Context, name string) (*Image, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", customerrors.ErrTimeout, err)
	}

	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, customerrors.ErrImageNotFound
		}
		return nil, customerrors.ErrImageIO{Op: "stat", Name: name, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, customerrors.ErrImageNotFound
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, customerrors.ErrImageIO{Op: "read", Name: name, Err: err}
	}

	return &Image{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// Exists reports whether a regular file with this name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", customerrors.ErrTimeout, err)
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, customerrors.ErrImageIO{Op: "stat", Name: name, Err: err}
	}
	return info.Mode().IsRegular(), nil
}

// List returns the sorted names of the files in the directory.
// A missing or unreadable directory yields an empty list, never an error.
func (s *Store) List(ctx context.Context) []string {
	names := []string{}
	if ctx.Err() != nil {
		return names
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("cannot read image directory", zap.String("dir", s.dir), zap.Error(err))
		return names
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

// Save writes r to name, replacing any existing file. Bodies larger than
// MaxSize are rejected with ErrImageTooLarge and nothing is written.
// It returns the number of bytes stored.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	p, err := s.path(name)
	if err != nil {
		return 0, err
	}

	// One extra byte tells "exactly the cap" apart from "over the cap".
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return 0, customerrors.ErrImageIO{Op: "receive", Name: name, Err: err}
	}
	if n > s.maxSize {
		return 0, customerrors.ErrImageTooLarge{Name: name, Limit: s.maxSize}
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", customerrors.ErrTimeout, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, customerrors.ErrImageIO{Op: "create directory for", Name: name, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return 0, customerrors.ErrImageIO{Op: "write", Name: name, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return 0, customerrors.ErrImageIO{Op: "write", Name: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return 0, customerrors.ErrImageIO{Op: "write", Name: name, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, customerrors.ErrImageIO{Op: "write", Name: name, Err: err}
	}
	if err := os.Rename(tmpName, p); err != nil {
		return 0, customerrors.ErrImageIO{Op: "write", Name: name, Err: err}
	}

	s.log.Debug("image stored", zap.String("name", name), zap.Int64("bytes", n))
	return n, nil
}
