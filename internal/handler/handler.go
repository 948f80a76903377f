package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/eagle/internal/gallery"
)

type FileHandler struct {
	vaultDir string
}

func NewFileHandler(vaultDir string) *FileHandler {
	return &FileHandler{vaultDir: NormalizePath(vaultDir)}
}

func (h *FileHandler) VaultDir() string {
	return h.vaultDir
}

// WalkFiles lists the markdown notes in the vault, skipping hidden entries,
// excluded directories (vault relative) and excluded file names.
func (h *FileHandler) WalkFiles(excludeDirs []string, excludeFiles []string) ([]string, error) {
	var files []string

	excludePaths := make(map[string]struct{}, len(excludeDirs))
	for _, d := range excludeDirs {
		excludePaths[filepath.Clean(filepath.Join(h.vaultDir, d))] = struct{}{}
	}

	err := filepath.WalkDir(
		h.vaultDir,
		func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			name := d.Name()
			if d.IsDir() {
				if path == h.vaultDir {
					return nil
				}
				if _, skip := excludePaths[filepath.Clean(path)]; skip || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".md") {
				return nil
			}
			for _, f := range excludeFiles {
				if name == f {
					return nil
				}
			}

			files = append(files, path)
			return nil
		},
	)

	return files, err
}

// NotePath resolves a note path, absolute or vault relative, to an absolute
// path inside the vault.
func (h *FileHandler) NotePath(p string) (string, error) {
	path := NormalizePath(p)
	if path == "" {
		return "", fmt.Errorf("note path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.vaultDir, path)
	}

	rel, err := VaultRelative(h.vaultDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("note %q is outside the vault", p)
	}
	return path, nil
}

// ReadNote returns a note's full text. Paths outside the vault are refused.
func (h *FileHandler) ReadNote(ctx context.Context, note gallery.NoteRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := h.NotePath(note.Path)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		rel, _ := VaultRelative(h.vaultDir, path)
		return "", fmt.Errorf("error reading note %s: %w", rel, err)
	}
	return string(content), nil
}
