package blob

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotImage  = errors.New("payload is not an image")
	ErrNotFound  = errors.New("blob not found")
	ErrBadRef    = errors.New("malformed blob reference")
	ErrWriteFail = errors.New("blob write failed")
)

// urlPrefix is how stored blobs are addressed on the HTTP surface.
const urlPrefix = "/images/"

// Store keeps uploaded image bytes on disk under generated names.
// A name is a random token plus the sanitized original filename, so
// two uploads sharing a filename never overwrite each other.
type Store struct {
	dir string
}

// NewStore creates dir if needed and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: abs}, nil
}

// Save writes the payload and returns the generated reference name.
// Content types not declaring an image are rejected up front. The
// bytes go to a temp file first and are renamed into place, so a
// failed write never leaves a resolvable partial blob.
func (s *Store) Save(r io.Reader, originalName, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	ref := fmt.Sprintf("%s_%s", strings.ReplaceAll(uuid.NewString(), "-", ""), sanitize(originalName))

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFail, err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFail, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFail, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, ref)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFail, err)
	}
	return ref, nil
}

// Resolve maps a reference to the absolute path of the stored blob.
// Traversal attempts and unknown refs both come back as errors; the
// caller never learns a path outside the store directory.
func (s *Store) Resolve(ref string) (string, error) {
	clean, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.dir, clean)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return full, nil
}

// Open returns a reader over the stored bytes.
func (s *Store) Open(ref string) (io.ReadCloser, error) {
	full, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Exists reports whether the reference resolves to a stored blob.
func (s *Store) Exists(ref string) bool {
	_, err := s.Resolve(ref)
	return err == nil
}

// Delete removes the blob if present. Deleting an absent blob is not
// an error; the bool reports whether anything was removed.
func (s *Store) Delete(ref string) (bool, error) {
	clean, err := cleanRef(ref)
	if err != nil {
		return false, err
	}
	err = os.Remove(filepath.Join(s.dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// URL returns the public address for a stored reference.
func URL(ref string) string { return urlPrefix + ref }

// RefFromURL extracts the blob reference from an image_url value.
func RefFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, urlPrefix) {
		return "", false
	}
	ref := strings.TrimPrefix(url, urlPrefix)
	return ref, ref != ""
}

// cleanRef rejects anything that could escape the store directory:
// raw or encoded traversal, absolute paths, separators, null bytes.
func cleanRef(ref string) (string, error) {
	lower := strings.ToLower(ref)
	if ref == "" || strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.ContainsRune(ref, 0) {
		return "", ErrBadRef
	}
	if strings.ContainsAny(ref, `/\`) {
		return "", ErrBadRef
	}
	clean := filepath.Clean(ref)
	if clean == "." || filepath.IsAbs(clean) {
		return "", ErrBadRef
	}
	return clean, nil
}

// sanitize strips path components and shell-hostile characters from
// an uploaded filename before it becomes part of a reference.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		out = "upload"
	}
	return out
}
