package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// zipEntry is one fixture member; a name ending in "/" creates a directory
// entry.
type zipEntry struct {
	name string
	body string
}

// writeZip builds a zip fixture on disk and returns its path.
func writeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "nope.zip"))
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("error = %v, want ErrInputNotFound", err)
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "garbage.zip")
		if err := os.WriteFile(path, []byte("this is not a zip archive"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Open(path)
		if !errors.Is(err, ErrNotZipArchive) {
			t.Errorf("error = %v, want ErrNotZipArchive", err)
		}
	})

	t.Run("valid archive", func(t *testing.T) {
		t.Parallel()

		path := writeZip(t, []zipEntry{{"a.txt", "hello"}})
		r, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if got := len(r.Entries()); got != 1 {
			t.Errorf("len(Entries()) = %d, want 1", got)
		}
	})

	t.Run("archive with unsafe names still opens", func(t *testing.T) {
		t.Parallel()

		path := writeZip(t, []zipEntry{
			{"ok.txt", "fine"},
			{"../escape.txt", "evil"},
		})
		r, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if got := len(r.Entries()); got != 2 {
			t.Errorf("len(Entries()) = %d, want 2", got)
		}
	})
}

func TestEntriesOrder(t *testing.T) {
	t.Parallel()

	path := writeZip(t, []zipEntry{
		{"z.html", "<p>z</p>"},
		{"a.html", "<p>a</p>"},
		{"m.txt", "m"},
	})
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	want := []string{"z.html", "a.html", "m.txt"}
	entries := r.Entries()
	if len(entries) != len(want) {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entry %d = %q, want %q (storage order must be preserved)", i, e.Name(), want[i])
		}
	}
}

func TestEntrySafePath(t *testing.T) {
	t.Parallel()

	path := writeZip(t, []zipEntry{
		{"a.html", ""},
		{"sub/c.html", ""},
		{"sub/", ""},
		{"../escape.txt", ""},
		{"/abs.txt", ""},
	})
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	want := map[string]struct {
		path string
		ok   bool
	}{
		"a.html":        {"a.html", true},
		"sub/c.html":    {filepath.Join("sub", "c.html"), true},
		"sub/":          {"sub", true},
		"../escape.txt": {"", false},
		"/abs.txt":      {"", false},
	}

	for _, e := range r.Entries() {
		w, found := want[e.Name()]
		if !found {
			t.Fatalf("unexpected entry %q", e.Name())
		}
		got, ok := e.SafePath()
		if got != w.path || ok != w.ok {
			t.Errorf("SafePath(%q) = (%q, %v), want (%q, %v)", e.Name(), got, ok, w.path, w.ok)
		}
	}
}

func TestEntryIsDir(t *testing.T) {
	t.Parallel()

	path := writeZip(t, []zipEntry{
		{"sub/", ""},
		{"sub/c.html", "<b>Bye</b>"},
	})
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for _, e := range r.Entries() {
		want := e.Name() == "sub/"
		if e.IsDir() != want {
			t.Errorf("IsDir(%q) = %v, want %v", e.Name(), e.IsDir(), want)
		}
	}
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	path := writeZip(t, []zipEntry{
		{"a.html", "<p>Hi</p>"},
		{"sub/", ""},
		{"sub/c.html", "<b>Bye</b>"},
		{"../escape.txt", "evil"},
	})
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	scratch, err := NewScratch()
	if err != nil {
		t.Fatal(err)
	}
	defer scratch.Remove()

	if err := r.ExtractAll(scratch); err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(scratch.Dir(), "a.html"))
	if err != nil {
		t.Fatalf("reading extracted a.html: %v", err)
	}
	if string(got) != "<p>Hi</p>" {
		t.Errorf("a.html = %q, want %q", got, "<p>Hi</p>")
	}

	got, err = os.ReadFile(filepath.Join(scratch.Dir(), "sub", "c.html"))
	if err != nil {
		t.Fatalf("reading extracted sub/c.html: %v", err)
	}
	if string(got) != "<b>Bye</b>" {
		t.Errorf("sub/c.html = %q, want %q", got, "<b>Bye</b>")
	}

	// The unsafe entry must not have been placed anywhere.
	if _, err := os.Stat(filepath.Join(filepath.Dir(scratch.Dir()), "escape.txt")); err == nil {
		t.Error("unsafe entry escaped the scratch directory")
	}
}

func TestScratchRemove(t *testing.T) {
	t.Parallel()

	scratch, err := NewScratch()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scratch.Dir(), "leftover.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := scratch.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(scratch.Dir()); !os.IsNotExist(err) {
		t.Errorf("scratch directory still exists after Remove (stat err = %v)", err)
	}
}

func TestEntryOpen(t *testing.T) {
	t.Parallel()

	path := writeZip(t, []zipEntry{{"b.txt", "hello"}})
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	rc, err := r.Entries()[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("entry bytes = %q, want %q", got, "hello")
	}
}
