package blob_test

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"shopapi/internal/blob"
)

func newStore(t *testing.T) *blob.Store {
	t.Helper()
	s, err := blob.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSaveAndResolveRoundTrip(t *testing.T) {
	s := newStore(t)
	ref, err := s.Save(strings.NewReader("png-bytes"), "photo.png", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(ref, "_photo.png") {
		t.Fatalf("ref should keep the original name: %s", ref)
	}
	rc, err := s.Open(ref)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "png-bytes" {
		t.Fatalf("stored bytes mismatch: %q", b)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newStore(t)
	_, err := s.Save(strings.NewReader("hello"), "notes.txt", "text/plain")
	if !errors.Is(err, blob.ErrNotImage) {
		t.Fatalf("want ErrNotImage, got %v", err)
	}
}

func TestSameFilenameGetsDistinctRefs(t *testing.T) {
	s := newStore(t)
	a, err := s.Save(strings.NewReader("first"), "pic.jpg", "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Save(strings.NewReader("second"), "pic.jpg", "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("two uploads of pic.jpg collided on ref %s", a)
	}
	rc, _ := s.Open(a)
	got, _ := io.ReadAll(rc)
	rc.Close()
	if string(got) != "first" {
		t.Fatalf("first upload was overwritten: %q", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newStore(t)
	ref, err := s.Save(strings.NewReader("x"), "a.gif", "image/gif")
	if err != nil {
		t.Fatal(err)
	}
	removed, err := s.Delete(ref)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = s.Delete(ref)
	if err != nil || removed {
		t.Fatalf("second delete should be a no-op: removed=%v err=%v", removed, err)
	}
	if _, err := s.Resolve(ref); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("deleted ref still resolves: %v", err)
	}
}

func TestTraversalRefsRejected(t *testing.T) {
	s := newStore(t)
	for _, ref := range []string{"../secret", "..", "a/../../b", "%2e%2e/x", "/etc/passwd", `..\win`} {
		if _, err := s.Resolve(ref); !errors.Is(err, blob.ErrBadRef) {
			t.Fatalf("Resolve(%q) should reject, got %v", ref, err)
		}
		if _, err := s.Delete(ref); !errors.Is(err, blob.ErrBadRef) {
			t.Fatalf("Delete(%q) should reject, got %v", ref, err)
		}
	}
}

func TestSanitizedNamesStayInsideStore(t *testing.T) {
	s := newStore(t)
	ref, err := s.Save(strings.NewReader("x"), "../../evil name.png", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(ref, `/\`) || strings.Contains(ref, "..") {
		t.Fatalf("ref escaped the store dir: %s", ref)
	}
	if _, err := s.Resolve(ref); err != nil {
		t.Fatalf("sanitized ref should resolve: %v", err)
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := blob.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := s.Save(strings.NewReader("bytes"), "clean.png", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != ref {
		t.Fatalf("expected only %s in store dir, got %v", ref, entries)
	}
}

func TestURLMapping(t *testing.T) {
	url := blob.URL("abc_pic.png")
	if url != "/images/abc_pic.png" {
		t.Fatalf("unexpected url %s", url)
	}
	ref, ok := blob.RefFromURL(url)
	if !ok || ref != "abc_pic.png" {
		t.Fatalf("round trip failed: %q %v", ref, ok)
	}
	if _, ok := blob.RefFromURL("/media/abc.png"); ok {
		t.Fatal("foreign url should not parse")
	}
	if _, ok := blob.RefFromURL("/images/"); ok {
		t.Fatal("empty ref should not parse")
	}
}
