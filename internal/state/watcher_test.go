package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVaultWatcherReportsNoteWrites(t *testing.T) {
	vault := t.TempDir()
	note := filepath.Join(vault, "pets.md")
	if err := os.WriteFile(note, []byte("one"), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	w, err := NewVaultWatcher(vault)
	if err != nil {
		t.Fatalf("NewVaultWatcher returned error: %v", err)
	}
	defer w.Close()

	var seen []string
	w.OnChange(func(path string) { seen = append(seen, path) })

	msgs := make(chan any, 1)
	go func() { msgs <- w.Start()() }()

	if err := os.WriteFile(filepath.Join(vault, "cat.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := os.WriteFile(note, []byte("two"), 0o644); err != nil {
		t.Fatalf("rewrite note: %v", err)
	}

	select {
	case msg := <-msgs:
		changed, ok := msg.(VaultNoteChangedMsg)
		if !ok {
			t.Fatalf("expected VaultNoteChangedMsg, got %#v", msg)
		}
		if changed.Path != filepath.Clean(note) {
			t.Fatalf("expected %q, got %q", note, changed.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}

	if len(seen) != 1 || seen[0] != filepath.Clean(note) {
		t.Fatalf("expected OnChange callback for the note, got %v", seen)
	}
}

func TestVaultWatcherRejectsEmptyVault(t *testing.T) {
	if _, err := NewVaultWatcher(""); err == nil {
		t.Fatal("expected error for empty vault")
	}
}

func TestVaultWatcherCloseStopsStart(t *testing.T) {
	w, err := NewVaultWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewVaultWatcher returned error: %v", err)
	}

	msgs := make(chan any, 1)
	go func() { msgs <- w.Start()() }()

	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}

	select {
	case msg := <-msgs:
		if msg != nil {
			t.Fatalf("expected nil message after close, got %#v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Close")
	}
}
