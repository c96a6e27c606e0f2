// Package fs provides file-based export of extraction results.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pith"
)

// Ensure ExportStore implements pith.ExportStore at compile time.
var _ pith.ExportStore = (*ExportStore)(nil)

// ExportStore implements pith.ExportStore with atomic update semantics.
// Results are saved to a temporary directory, then moved atomically on
// Commit, so readers never observe a half-written export.
type ExportStore struct {
	baseDir string
	name    string
}

// NewExportStore creates a new ExportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExportStore(baseDir, name string) *ExportStore {
	return &ExportStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save stages a named result in the temporary directory. The name is a
// relative path; names that would escape the output directory are
// rejected.
func (s *ExportStore) Save(ctx context.Context, name string, data []byte) error {
	if !filepath.IsLocal(name) {
		return pith.Errorf(pith.EINVALID, "path traversal in export name %q", name)
	}

	fullPath := filepath.Join(s.tempDir(), name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0644)
}

// Commit atomically replaces the final directory with the staged one.
func (s *ExportStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards any staged results.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a source URL to a relative file path with the given
// extension.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pith.Errorf(pith.EINVALID, "invalid locator %q", rawURL)
	}

	path := u.Path

	// Root or bare host becomes an index file.
	if path == "" || path == "/" {
		return "index" + ext, nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes an index file in that directory.
	if strings.HasSuffix(path, "/") {
		return path + "index" + ext, nil
	}

	return path + ext, nil
}

// FormatMarkdown renders an extraction as markdown with YAML frontmatter.
func FormatMarkdown(content *pith.ExtractedContent, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(content.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(content.Title)
	b.WriteString("\nextracted: ")
	b.WriteString(content.ExtractedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}
