package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/eagle/internal/handler"
	"github.com/Paintersrp/eagle/internal/state"
)

type fakeView struct {
	shown    int
	torndown int
	updates  []tea.Msg
}

func (v *fakeView) ViewType() string    { return "fake" }
func (v *fakeView) DisplayText() string { return "Fake" }
func (v *fakeView) Icon() string        { return "x" }
func (v *fakeView) OnShow() tea.Cmd     { v.shown++; return nil }
func (v *fakeView) OnHostTeardown()     { v.torndown++ }
func (v *fakeView) Render(int, int) string {
	return "fake view"
}

func (v *fakeView) Update(msg tea.Msg) tea.Cmd {
	v.updates = append(v.updates, msg)
	return nil
}

type recordingPlugin struct {
	views       []*fakeView
	layoutReady int
	viewChanged int
	noteOpened  int
	unloaded    int
	ribbonRuns  int
}

func (p *recordingPlugin) Load(w *Workspace) tea.Cmd {
	w.RegisterView("fake", func(*Leaf) View {
		v := &fakeView{}
		p.views = append(p.views, v)
		return v
	})
	w.OnLayoutReady(func() tea.Cmd {
		p.layoutReady++
		return w.SetViewState(w.RightLeaf(), "fake")
	})
	w.AddRibbonAction(Action{
		Key:   key.NewBinding(key.WithKeys("ctrl+e")),
		Icon:  "x",
		Title: "Fake",
		Run: func() tea.Cmd {
			p.ribbonRuns++
			return nil
		},
	})
	w.OnActiveViewChanged(func() tea.Cmd { p.viewChanged++; return nil })
	w.OnNoteOpened(func() tea.Cmd { p.noteOpened++; return nil })
	w.OnUnload(func() {
		p.unloaded++
		w.DetachLeavesOfType("fake")
	})
	return nil
}

func newTestWorkspace(t *testing.T) (*Workspace, *recordingPlugin, string) {
	t.Helper()

	vault := t.TempDir()
	for _, name := range []string{"a.md", "b.md"} {
		if err := os.WriteFile(filepath.Join(vault, name), []byte("# "+name+"\n![x](x.png)\n"), 0o644); err != nil {
			t.Fatalf("failed to write note: %v", err)
		}
	}

	w, err := New(handler.NewFileHandler(vault), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	w.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	p := &recordingPlugin{}
	w.Install(p)
	w.Init()

	return w, p, vault
}

func TestInitRunsLayoutReadyAndMountsView(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	if p.layoutReady != 1 {
		t.Fatalf("expected layout ready once, got %d", p.layoutReady)
	}
	if len(p.views) != 1 || p.views[0].shown != 1 {
		t.Fatalf("expected one shown view, got %+v", p.views)
	}
	if got := len(w.LeavesOfType("fake")); got != 1 {
		t.Fatalf("expected one fake leaf, got %d", got)
	}
	if _, ok := w.ActiveNote(); !ok {
		t.Fatal("expected an active note")
	}
}

func TestSetViewStateTearsDownPreviousView(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	w.SetViewState(w.RightLeaf(), "fake")

	if len(p.views) != 2 {
		t.Fatalf("expected two views, got %d", len(p.views))
	}
	if p.views[0].torndown != 1 {
		t.Fatalf("expected first view torn down, got %d", p.views[0].torndown)
	}
	if w.RightLeaf().View() != p.views[1] {
		t.Fatal("expected leaf to hold the new view")
	}
}

func TestSetViewStateUnknownTypeIsNoop(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	if cmd := w.SetViewState(w.RightLeaf(), "missing"); cmd != nil {
		t.Fatal("expected nil command for unknown view type")
	}
	if w.RightLeaf().View() != p.views[0] {
		t.Fatal("expected existing view to stay mounted")
	}
}

func TestSelectionChangeFiresNoteOpened(t *testing.T) {
	w, p, vault := newTestWorkspace(t)

	w.Update(tea.KeyMsg{Type: tea.KeyDown})

	if p.noteOpened != 1 {
		t.Fatalf("expected note opened once, got %d", p.noteOpened)
	}
	note, ok := w.ActiveNote()
	if !ok || note.Path != filepath.Join(vault, "b.md") {
		t.Fatalf("expected b.md active, got %+v", note)
	}

	w.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.noteOpened != 1 {
		t.Fatalf("expected no event without a selection change, got %d", p.noteOpened)
	}
}

func TestActiveNoteWriteFiresNoteOpened(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	note, _ := w.ActiveNote()
	w.Update(state.VaultNoteChangedMsg{Path: handler.NormalizePath(note.Path)})

	if p.noteOpened != 1 {
		t.Fatalf("expected note opened once, got %d", p.noteOpened)
	}
}

func TestOtherNoteWriteDoesNotFire(t *testing.T) {
	w, p, vault := newTestWorkspace(t)

	w.Update(state.VaultNoteChangedMsg{Path: handler.NormalizePath(filepath.Join(vault, "b.md"))})

	if p.noteOpened != 0 {
		t.Fatalf("expected no note opened event, got %d", p.noteOpened)
	}
}

func TestTabFiresActiveViewChangedAndFocusesLeaf(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	w.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.viewChanged != 1 {
		t.Fatalf("expected active view changed once, got %d", p.viewChanged)
	}
	if w.focus != paneLeaf {
		t.Fatal("expected leaf focus")
	}

	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if got := len(p.views[0].updates); got != 1 {
		t.Fatalf("expected key forwarded to view, got %d messages", got)
	}
}

func TestRibbonActionRuns(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	w.Update(tea.KeyMsg{Type: tea.KeyCtrlE})

	if p.ribbonRuns != 1 {
		t.Fatalf("expected ribbon action once, got %d", p.ribbonRuns)
	}
}

func TestQuitUnloadsOnce(t *testing.T) {
	w, p, _ := newTestWorkspace(t)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}

	w.Unload()

	if p.unloaded != 1 {
		t.Fatalf("expected unload once, got %d", p.unloaded)
	}
	if p.views[0].torndown != 1 {
		t.Fatalf("expected view torn down on unload, got %d", p.views[0].torndown)
	}
	if got := len(w.LeavesOfType("fake")); got != 0 {
		t.Fatalf("expected no fake leaves after unload, got %d", got)
	}
}

func TestSelectSetsActiveNote(t *testing.T) {
	w, _, vault := newTestWorkspace(t)

	if !w.Select(filepath.Join(vault, "b.md")) {
		t.Fatal("expected b.md to be selectable")
	}
	note, _ := w.ActiveNote()
	if filepath.Base(note.Path) != "b.md" {
		t.Fatalf("expected b.md active, got %s", note.Path)
	}
	if w.Select(filepath.Join(vault, "missing.md")) {
		t.Fatal("expected missing note to be rejected")
	}
}

func TestListFollowsSplitChanges(t *testing.T) {
	w, _, _ := newTestWorkspace(t)
	h, _ := appStyle.GetFrameSize()

	if got, want := w.list.Width(), 60-h; got != want {
		t.Fatalf("expected list width %d beside the leaf, got %d", want, got)
	}

	w.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if got, want := w.list.Width(), 120-h; got != want {
		t.Fatalf("expected list width %d with the split collapsed, got %d", want, got)
	}

	w.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if got, want := w.list.Width(), 60-h; got != want {
		t.Fatalf("expected list width %d after restoring the split, got %d", want, got)
	}

	w.DetachLeavesOfType("fake")
	if got, want := w.list.Width(), 120-h; got != want {
		t.Fatalf("expected list width %d without a view, got %d", want, got)
	}
}
