package plugin

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/eagle/internal/constants"
	"github.com/Paintersrp/eagle/internal/handler"
	"github.com/Paintersrp/eagle/internal/settings"
	"github.com/Paintersrp/eagle/internal/tui/workspace"
)

type harness struct {
	plugin    *Plugin
	workspace *workspace.Workspace
	store     *settings.Store
	dataPath  string
	vault     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	vault := t.TempDir()
	notes := map[string]string{
		"cats.md":  "# Cats\n![tabby](QUFBQQ==)\n",
		"dogs.md":  "# Dogs\n![[corgi]]\n![[pug]]\n",
		"empty.md": "nothing here\n",
	}
	for name, content := range notes {
		if err := os.WriteFile(filepath.Join(vault, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write note: %v", err)
		}
	}

	dataPath := filepath.Join(t.TempDir(), "data.yaml")
	store := settings.NewStore(settings.NewFilePersister(dataPath))
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	w, err := workspace.New(handler.NewFileHandler(vault), nil)
	if err != nil {
		t.Fatalf("workspace.New returned error: %v", err)
	}
	w.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	p := New(context.Background(), store)
	w.Install(p)

	return &harness{plugin: p, workspace: w, store: store, dataPath: dataPath, vault: vault}
}

// deliver runs a read command and feeds its message back to the workspace.
func (h *harness) deliver(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a read command")
	}
	h.workspace.Update(cmd())
}

func TestLoadRegistersCommandsAndRibbon(t *testing.T) {
	h := newHarness(t)

	ids := map[string]bool{}
	for _, c := range h.workspace.Commands() {
		ids[c.ID] = true
	}
	for _, id := range []string{CommandOpenGallery, CommandToggleImageSource} {
		if !ids[id] {
			t.Errorf("expected command %q to be registered", id)
		}
	}

	ribbon := h.workspace.RibbonActions()
	if len(ribbon) != 1 || ribbon[0].Icon != constants.ViewIcon {
		t.Fatalf("unexpected ribbon actions: %+v", ribbon)
	}
}

func TestLayoutReadyCreatesGalleryOnce(t *testing.T) {
	h := newHarness(t)
	h.workspace.Init()

	if h.plugin.View() == nil {
		t.Fatal("expected gallery view after layout ready")
	}
	if got := len(h.workspace.LeavesOfType(constants.ViewType)); got != 1 {
		t.Fatalf("expected one gallery leaf, got %d", got)
	}

	first := h.plugin.View()
	h.plugin.onLayoutReady()
	if h.plugin.View() != first {
		t.Fatal("expected layout ready to keep the existing gallery")
	}
}

func TestOpenGalleryViewShowsActiveNote(t *testing.T) {
	h := newHarness(t)
	if _, err := h.store.Set(settings.KeyDefaultColWidth, "320"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	h.workspace.Select(filepath.Join(h.vault, "cats.md"))

	h.deliver(t, h.plugin.OpenGalleryView())

	controller := h.plugin.View().Controller()
	if !controller.Populated() {
		t.Fatal("expected populated gallery")
	}
	note, _ := controller.Bound()
	if filepath.Base(note.Path) != "cats.md" {
		t.Fatalf("expected cats.md bound, got %s", note.Path)
	}
	if out := h.workspace.View(); !strings.Contains(out, "data:image/png;base64,QUFBQQ==") {
		t.Fatalf("expected resolved data URI in workspace view:\n%s", out)
	}
}

func TestOpenGalleryViewReplacesExistingView(t *testing.T) {
	h := newHarness(t)
	h.workspace.Select(filepath.Join(h.vault, "cats.md"))

	h.deliver(t, h.plugin.OpenGalleryView())
	old := h.plugin.View()

	h.deliver(t, h.plugin.OpenGalleryView())

	if h.plugin.View() == old {
		t.Fatal("expected a fresh view")
	}
	if old.Controller().Populated() {
		t.Fatal("expected the replaced view to be torn down")
	}
}

func TestReloadFollowsActiveNote(t *testing.T) {
	h := newHarness(t)
	h.workspace.Select(filepath.Join(h.vault, "cats.md"))
	h.deliver(t, h.plugin.OpenGalleryView())

	h.workspace.Select(filepath.Join(h.vault, "dogs.md"))
	h.deliver(t, h.plugin.reloadGallery())

	note, ok := h.plugin.View().Controller().Bound()
	if !ok || filepath.Base(note.Path) != "dogs.md" {
		t.Fatalf("expected dogs.md bound, got %+v", note)
	}
}

func TestReloadWithoutViewIsNoop(t *testing.T) {
	h := newHarness(t)

	if cmd := h.plugin.reloadGallery(); cmd != nil {
		t.Fatal("expected no command before the view exists")
	}
}

func TestToggleImageSourcePersists(t *testing.T) {
	h := newHarness(t)
	h.workspace.Select(filepath.Join(h.vault, "dogs.md"))
	h.deliver(t, h.plugin.OpenGalleryView())

	h.plugin.ToggleImageSource()

	if got := h.store.Get().ImageSourceType; got != settings.ByUrlTemplate {
		t.Fatalf("expected url source type, got %q", got)
	}
	data, err := os.ReadFile(h.dataPath)
	if err != nil {
		t.Fatalf("failed to read settings blob: %v", err)
	}
	if !strings.Contains(string(data), "imageSourceType: url") {
		t.Fatalf("expected persisted source type, got:\n%s", data)
	}
	if h.plugin.View().Controller().Populated() {
		t.Fatal("expected reload to clear before the new read completes")
	}

	h.plugin.ToggleImageSource()
	if got := h.store.Get().ImageSourceType; got != settings.ByEmbeddedContent {
		t.Fatalf("expected base64 source type, got %q", got)
	}
}

func TestUnloadDetachesGallery(t *testing.T) {
	h := newHarness(t)
	h.workspace.Select(filepath.Join(h.vault, "cats.md"))
	h.deliver(t, h.plugin.OpenGalleryView())
	view := h.plugin.View()

	h.workspace.Unload()

	if h.plugin.View() != nil {
		t.Fatal("expected plugin to drop its view")
	}
	if view.Controller().Populated() {
		t.Fatal("expected torn down gallery")
	}
	if got := len(h.workspace.LeavesOfType(constants.ViewType)); got != 0 {
		t.Fatalf("expected no gallery leaves, got %d", got)
	}
}
