package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	t.Helper()

	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644)
	if err != nil {
		t.Fatalf("failed to write file %q: %s", name, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<div id="a"><p></p></div>`)

	ws := New(dir)

	doc, err := ws.Load("index.html")
	if err != nil {
		t.Fatalf("failed to load file: %s", err)
	}

	assert(t, 1, len(doc.Roots), "root count")
	assert(t, "a", doc.Roots[0].ID, "root id")
	assert(t, "p", doc.Roots[0].Children[0].Tag, "child tag")
}

func TestLoadMissingFile(t *testing.T) {
	ws := New(t.TempDir())

	_, err := ws.Load("nope.html")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadCachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<div></div>`)

	ws := New(dir)

	doc, err := ws.Load("index.html")
	if err != nil {
		t.Fatalf("failed to load file: %s", err)
	}
	assert(t, "div", doc.Roots[0].Tag, "initial root")

	// An edit on disk is not picked up until the document is invalidated.
	writeFile(t, dir, "index.html", `<p></p>`)

	doc, err = ws.Load("index.html")
	if err != nil {
		t.Fatalf("failed to load file: %s", err)
	}
	assert(t, "div", doc.Roots[0].Tag, "cached root")

	ws.Invalidate("index.html")

	doc, err = ws.Load("index.html")
	if err != nil {
		t.Fatalf("failed to load file: %s", err)
	}
	assert(t, "p", doc.Roots[0].Tag, "root after invalidation")
}

func TestLoadWithContents(t *testing.T) {
	ws := New("")

	doc := ws.LoadWithContents("mem.html", []byte(`<span class="x"></span>`))

	assert(t, 1, len(doc.Roots), "root count")
	assert(t, "x", doc.Roots[0].Classes[0], "root class")

	// The in-memory document replaces any cached one for the same path.
	doc = ws.LoadWithContents("mem.html", []byte(`<em></em>`))
	assert(t, "em", doc.Roots[0].Tag, "replaced root")
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.html", `<p></p>`)
	writeFile(t, dir, "a.html", `<p></p>`)

	ws := New(dir)

	if _, err := ws.Load("b.html"); err != nil {
		t.Fatalf("failed to load file: %s", err)
	}
	if _, err := ws.Load("a.html"); err != nil {
		t.Fatalf("failed to load file: %s", err)
	}

	want := []string{
		filepath.Join(dir, "a.html"),
		filepath.Join(dir, "b.html"),
	}

	if diff := cmp.Diff(want, ws.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}
