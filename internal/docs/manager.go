package docs

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// defaultFileMode is used when a README is created rather than rewritten.
const defaultFileMode os.FileMode = 0o644

// Document represents a README loaded from disk.
type Document struct {
	Path        string
	Content     string
	Frontmatter *Frontmatter
	Mode        os.FileMode
}

// Manager handles README file operations.
type Manager struct {
	fs       afero.Fs
	rewriter *Rewriter
}

// NewManager creates a new README manager for sections titled title.
func NewManager(fsys afero.Fs, title string) (*Manager, error) {
	rw, err := NewRewriter(title)
	if err != nil {
		return nil, err
	}
	return &Manager{fs: fsys, rewriter: rw}, nil
}

// Rewriter returns the section rewriter used by the manager.
func (m *Manager) Rewriter() *Rewriter {
	return m.rewriter
}

// LoadDocument reads and parses a README.
func (m *Manager) LoadDocument(path string) (*Document, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	content, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	fm, _, err := ParseFrontmatter(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &Document{
		Path:        path,
		Content:     string(content),
		Frontmatter: fm,
		Mode:        info.Mode().Perm(),
	}, nil
}

// SaveDocument truncates the file and writes the document content.
func (m *Manager) SaveDocument(doc *Document) error {
	mode := doc.Mode
	if mode == 0 {
		mode = defaultFileMode
	}
	if err := afero.WriteFile(m.fs, doc.Path, []byte(doc.Content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", doc.Path, err)
	}
	return nil
}

// UpdateParametersSection replaces the parameters section of doc with the
// block produced by render. On ErrParametersSectionNotFound the document is
// left untouched.
func (m *Manager) UpdateParametersSection(doc *Document, render RenderFunc) error {
	updated, err := m.rewriter.Rewrite(doc.Content, render)
	if err != nil {
		return err
	}
	doc.Content = updated
	return nil
}

// HasParametersSection checks if the document has a parameters heading.
func (m *Manager) HasParametersSection(doc *Document) bool {
	return m.rewriter.Has(doc.Content)
}

// IsAutomationDisabled checks if generation is disabled for a document.
func (m *Manager) IsAutomationDisabled(doc *Document) bool {
	return doc.Frontmatter.IsDisabled()
}
