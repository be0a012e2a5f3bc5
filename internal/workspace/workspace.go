package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"htmlscope/internal/outline"
)

// Document is one analyzed file: its text and the element outline built from
// it. The outline is rebuilt from scratch whenever the text changes; there is
// no incremental patching.
type Document struct {
	Path  string
	Text  string
	Roots []*outline.Element
}

type Workspace struct {
	rootPath string

	documents map[string]*Document
}

func New(rootPath string) *Workspace {
	return &Workspace{
		rootPath:  rootPath,
		documents: make(map[string]*Document),
	}
}

// Load reads and analyzes the file at relPath, reusing a cached document if
// the file was loaded before and not invalidated since.
func (w *Workspace) Load(relPath string) (*Document, error) {
	fullPath := filepath.Join(w.rootPath, relPath)

	if doc, ok := w.documents[fullPath]; ok {
		return doc, nil
	}

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return w.store(fullPath, string(bytes)), nil
}

// LoadWithContents analyzes text that is already in memory, replacing any
// cached document for relPath.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) *Document {
	return w.store(filepath.Join(w.rootPath, relPath), string(contents))
}

// Invalidate drops the cached document for relPath so the next Load re-reads
// and re-analyzes the file. Call it after every successful edit.
func (w *Workspace) Invalidate(relPath string) {
	delete(w.documents, filepath.Join(w.rootPath, relPath))
}

// Paths returns the full paths of all cached documents, sorted.
func (w *Workspace) Paths() []string {
	paths := maps.Keys(w.documents)
	slices.Sort(paths)
	return paths
}

func (w *Workspace) store(fullPath, text string) *Document {
	doc := &Document{
		Path:  fullPath,
		Text:  text,
		Roots: outline.Build(text),
	}

	w.documents[fullPath] = doc
	return doc
}
