package handler

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Paintersrp/eagle/internal/gallery"
)

func TestWalkFilesIncludesRootAndNestedNotes(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()

	rootNote := filepath.Join(vaultDir, "root.md")
	nestedNote := filepath.Join(vaultDir, "project", "nested.md")
	trashedNote := filepath.Join(vaultDir, "trash", "trashed.md")
	hiddenNote := filepath.Join(vaultDir, ".obsidian", "workspace.md")
	image := filepath.Join(vaultDir, "project", "cat.png")

	mustWriteFile(t, rootNote)
	mustWriteFile(t, nestedNote)
	mustWriteFile(t, trashedNote)
	mustWriteFile(t, hiddenNote)
	mustWriteFile(t, image)

	h := NewFileHandler(vaultDir)

	files, err := h.WalkFiles([]string{"trash"}, nil)
	if err != nil {
		t.Fatalf("WalkFiles returned error: %v", err)
	}

	slices.Sort(files)
	expected := []string{rootNote, nestedNote}
	slices.Sort(expected)

	if !slices.Equal(files, expected) {
		t.Fatalf("WalkFiles returned %v, want %v", files, expected)
	}
}

func TestReadNote(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	note := filepath.Join(vaultDir, "project", "nested.md")
	mustWriteFile(t, note)

	h := NewFileHandler(vaultDir)

	content, err := h.ReadNote(context.Background(), gallery.NoteRef{Path: note})
	if err != nil {
		t.Fatalf("ReadNote returned error: %v", err)
	}
	if content != "# test\n" {
		t.Fatalf("unexpected content: %q", content)
	}

	content, err = h.ReadNote(context.Background(), gallery.NoteRef{Path: "project/nested.md"})
	if err != nil || content != "# test\n" {
		t.Fatalf("expected vault relative read to succeed, got %q, %v", content, err)
	}
}

func TestReadNoteFailures(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	h := NewFileHandler(vaultDir)

	if _, err := h.ReadNote(context.Background(), gallery.NoteRef{Path: "missing.md"}); err == nil {
		t.Fatal("expected error for missing note")
	}

	outside := filepath.Join(filepath.Dir(vaultDir), "outside.md")
	_, err := h.ReadNote(context.Background(), gallery.NoteRef{Path: outside})
	if err == nil || !strings.Contains(err.Error(), "outside the vault") {
		t.Fatalf("expected outside-vault error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.ReadNote(ctx, gallery.NoteRef{Path: "missing.md"}); err != context.Canceled {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestVaultRelativeReturnsForwardSlashes(t *testing.T) {
	t.Parallel()

	vault := filepath.Join("home", "user", "vault")
	file := filepath.Join(vault, "subdir", "file.md")

	rel, err := VaultRelative(vault, file)
	if err != nil {
		t.Fatalf("VaultRelative returned error: %v", err)
	}
	if rel != "subdir/file.md" {
		t.Fatalf("expected 'subdir/file.md', got %q", rel)
	}

	windowsVault := strings.ReplaceAll(vault, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(file, string(filepath.Separator), "\\")
	rel, err = VaultRelative(windowsVault, windowsFile)
	if err != nil || rel != "subdir/file.md" {
		t.Fatalf("expected Windows paths to normalise, got %q, %v", rel, err)
	}
}

func TestSubdirectory(t *testing.T) {
	t.Parallel()

	vault := filepath.Join("vault")
	if got := Subdirectory(vault, filepath.Join(vault, "root.md")); got != "" {
		t.Fatalf("expected no subdirectory for root note, got %q", got)
	}
	if got := Subdirectory(vault, filepath.Join(vault, "sub", "dir", "note.md")); got != "sub" {
		t.Fatalf("expected 'sub', got %q", got)
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantTags  []string
	}{
		{
			name:      "title and tags",
			content:   "---\ntitle: Cats \ntags:\n  - animal\n  - pet\n---\n# body\n",
			wantTitle: "Cats",
			wantTags:  []string{"animal", "pet"},
		},
		{
			name:    "no front matter",
			content: "# just a heading\n",
		},
		{
			name:    "invalid yaml",
			content: "---\ntitle: [unclosed\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, tags := ParseFrontMatter([]byte(tt.content))
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if len(tags) != len(tt.wantTags) {
				t.Fatalf("tags = %v, want %v", tags, tt.wantTags)
			}
			for i := range tags {
				if tags[i] != tt.wantTags[i] {
					t.Errorf("tags[%d] = %q, want %q", i, tags[i], tt.wantTags[i])
				}
			}
		})
	}
}
