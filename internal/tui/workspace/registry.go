package workspace

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// View is the capability set a view must offer to live in a leaf.
type View interface {
	ViewType() string
	DisplayText() string
	Icon() string
	// OnShow runs once when the view is placed in a leaf.
	OnShow() tea.Cmd
	// OnHostTeardown runs before the leaf drops the view.
	OnHostTeardown()
	Update(msg tea.Msg) tea.Cmd
	Render(width, height int) string
}

type ViewFactory func(leaf *Leaf) View

// Leaf is a slot in the workspace that holds at most one view.
type Leaf struct {
	view View
}

func (l *Leaf) View() View {
	if l == nil {
		return nil
	}
	return l.view
}

// Action is a ribbon entry.
type Action struct {
	Key   key.Binding
	Icon  string
	Title string
	Run   func() tea.Cmd
}

type Command struct {
	ID   string
	Name string
	Key  key.Binding
	Run  func() tea.Cmd
}

// Plugin is anything installed into the workspace. Load registers views,
// actions and event handlers and may return a command to run at startup.
type Plugin interface {
	Load(w *Workspace) tea.Cmd
}

func (w *Workspace) Install(p Plugin) {
	if cmd := p.Load(w); cmd != nil {
		w.initCmds = append(w.initCmds, cmd)
	}
}

func (w *Workspace) RegisterView(viewType string, factory ViewFactory) {
	w.views[viewType] = factory
}

func (w *Workspace) OnLayoutReady(fn func() tea.Cmd) {
	w.layoutReady = append(w.layoutReady, fn)
}

func (w *Workspace) AddRibbonAction(a Action) {
	w.ribbon = append(w.ribbon, a)
}

func (w *Workspace) AddCommand(c Command) {
	w.commands = append(w.commands, c)
}

// OnActiveViewChanged subscribes to focus moving between panes.
func (w *Workspace) OnActiveViewChanged(fn func() tea.Cmd) {
	w.activeViewChanged = append(w.activeViewChanged, fn)
}

// OnNoteOpened subscribes to the active note changing or being rewritten.
func (w *Workspace) OnNoteOpened(fn func() tea.Cmd) {
	w.noteOpened = append(w.noteOpened, fn)
}

func (w *Workspace) OnUnload(fn func()) {
	w.unload = append(w.unload, fn)
}

func (w *Workspace) Commands() []Command {
	return w.commands
}

func (w *Workspace) RibbonActions() []Action {
	return w.ribbon
}

// LeavesOfType returns the leaves currently holding a view of viewType.
func (w *Workspace) LeavesOfType(viewType string) []*Leaf {
	if w.leaf != nil && w.leaf.view != nil && w.leaf.view.ViewType() == viewType {
		return []*Leaf{w.leaf}
	}
	return nil
}

// RightLeaf returns the leaf of the right split, creating it when needed.
func (w *Workspace) RightLeaf() *Leaf {
	if w.leaf == nil {
		w.leaf = &Leaf{}
	}
	return w.leaf
}

// SetViewState places a new view of viewType in leaf, tearing down the
// previous occupant first.
func (w *Workspace) SetViewState(leaf *Leaf, viewType string) tea.Cmd {
	factory, ok := w.views[viewType]
	if !ok || leaf == nil {
		return nil
	}

	if leaf.view != nil {
		leaf.view.OnHostTeardown()
		leaf.view = nil
	}

	leaf.view = factory(leaf)
	w.resize()
	if leaf.view == nil {
		return nil
	}
	return leaf.view.OnShow()
}

func (w *Workspace) DetachLeavesOfType(viewType string) {
	for _, leaf := range w.LeavesOfType(viewType) {
		leaf.view.OnHostTeardown()
		leaf.view = nil
	}
	w.resize()
}

func (w *Workspace) RevealLeaf(leaf *Leaf) {
	if leaf == w.leaf {
		w.rightCollapsed = false
		w.resize()
	}
}

func (w *Workspace) RightSplitCollapsed() bool {
	return w.rightCollapsed
}

func (w *Workspace) ToggleRightSplit() {
	w.rightCollapsed = !w.rightCollapsed
	w.resize()
}

func (w *Workspace) SetStatus(msg string) tea.Cmd {
	return w.list.NewStatusMessage(statusStyle(msg))
}

func fire(handlers []func() tea.Cmd) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(handlers))
	for _, fn := range handlers {
		cmds = append(cmds, fn())
	}
	return tea.Batch(cmds...)
}
