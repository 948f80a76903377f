// Package workspace is the terminal host: a notes list on the left and a
// right split with one leaf for plugin views.
package workspace

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/Paintersrp/eagle/internal/gallery"
	"github.com/Paintersrp/eagle/internal/handler"
	"github.com/Paintersrp/eagle/internal/state"
)

type pane int

const (
	paneList pane = iota
	paneLeaf
)

var excludedDirs = []string{"trash", "archive"}

type Workspace struct {
	list    list.Model
	keys    *listKeyMap
	items   *itemCache
	handler *handler.FileHandler
	watcher *state.VaultWatcher

	views          map[string]ViewFactory
	leaf           *Leaf
	rightCollapsed bool
	focus          pane
	active         *gallery.NoteRef

	ribbon            []Action
	commands          []Command
	activeViewChanged []func() tea.Cmd
	noteOpened        []func() tea.Cmd
	layoutReady       []func() tea.Cmd
	unload            []func()
	unloaded          bool
	initCmds          []tea.Cmd

	width  int
	height int
}

func New(h *handler.FileHandler, watcher *state.VaultWatcher) (*Workspace, error) {
	files, err := h.WalkFiles(excludedDirs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	items := newItemCache()
	l := list.New(ParseNoteFiles(files, h.VaultDir(), items), d, 0, 0)
	l.Title = "Notes"
	l.Styles.Title = titleStyle

	w := &Workspace{
		list:    l,
		keys:    newListKeyMap(),
		items:   items,
		handler: h,
		watcher: watcher,
		views:   make(map[string]ViewFactory),
	}
	w.list.AdditionalShortHelpKeys = w.shortHelp
	w.active = w.selectedNote()

	return w, nil
}

// Select makes the note at path the active note, if it is listed.
func (w *Workspace) Select(path string) bool {
	target := handler.NormalizePath(path)
	for i, item := range w.list.Items() {
		if li, ok := item.(ListItem); ok && handler.NormalizePath(li.path) == target {
			w.list.Select(i)
			w.active = w.selectedNote()
			return true
		}
	}
	return false
}

// ActiveNote returns the note highlighted in the notes list.
func (w *Workspace) ActiveNote() (gallery.NoteRef, bool) {
	if w.active == nil {
		return gallery.NoteRef{}, false
	}
	return *w.active, true
}

func (w *Workspace) ReadNote(ctx context.Context, note gallery.NoteRef) (string, error) {
	return w.handler.ReadNote(ctx, note)
}

func (w *Workspace) Init() tea.Cmd {
	cmds := append([]tea.Cmd(nil), w.initCmds...)
	w.initCmds = nil

	cmds = append(cmds, fire(w.layoutReady), w.watch())
	return tea.Batch(cmds...)
}

// watch waits for the next watcher event. It must be re-issued after each.
func (w *Workspace) watch() tea.Cmd {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Start()
}

func (w *Workspace) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.resize()
		return w, nil

	case state.VaultNoteChangedMsg:
		cmds = append(cmds, w.refreshItems())
		force := w.active != nil && handler.NormalizePath(w.active.Path) == msg.Path
		cmds = append(cmds, w.syncActiveNote(force), w.watch())
		return w, tea.Batch(cmds...)

	case state.VaultWatcherErrMsg:
		log.Warn().Err(msg.Err).Msg("vault watcher error")
		return w, tea.Batch(w.SetStatus("Watcher error: "+msg.Err.Error()), w.watch())

	case tea.KeyMsg:
		return w, w.handleKey(msg)
	}

	if view := w.leaf.View(); view != nil {
		cmds = append(cmds, view.Update(msg))
	}
	nl, cmd := w.list.Update(msg)
	w.list = nl
	cmds = append(cmds, cmd)

	return w, tea.Batch(cmds...)
}

func (w *Workspace) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, w.keys.quit) {
		w.Unload()
		return tea.Quit
	}

	if w.list.FilterState() != list.Filtering {
		for _, a := range w.ribbon {
			if key.Matches(msg, a.Key) {
				return a.Run()
			}
		}
		for _, c := range w.commands {
			if key.Matches(msg, c.Key) {
				return c.Run()
			}
		}

		switch {
		case key.Matches(msg, w.keys.toggleFocus):
			if w.focus == paneList && w.leaf.View() != nil && !w.rightCollapsed {
				w.focus = paneLeaf
			} else {
				w.focus = paneList
			}
			return fire(w.activeViewChanged)

		case key.Matches(msg, w.keys.toggleRightSplit):
			w.ToggleRightSplit()
			if w.rightCollapsed {
				w.focus = paneList
			}
			return nil
		}

		if w.focus == paneLeaf {
			if view := w.leaf.View(); view != nil {
				return view.Update(msg)
			}
		}
	}

	nl, cmd := w.list.Update(msg)
	w.list = nl
	return tea.Batch(cmd, w.syncActiveNote(false))
}

// syncActiveNote follows the list selection and fires note opened when it
// moved, or unconditionally when force is set.
func (w *Workspace) syncActiveNote(force bool) tea.Cmd {
	next := w.selectedNote()

	changed := (next == nil) != (w.active == nil) ||
		(next != nil && w.active != nil && next.Path != w.active.Path)
	w.active = next

	if changed || force {
		return fire(w.noteOpened)
	}
	return nil
}

func (w *Workspace) selectedNote() *gallery.NoteRef {
	if i, ok := w.list.SelectedItem().(ListItem); ok {
		return &gallery.NoteRef{Path: i.path}
	}
	return nil
}

func (w *Workspace) refreshItems() tea.Cmd {
	files, err := w.handler.WalkFiles(excludedDirs, nil)
	if err != nil {
		return w.SetStatus(fmt.Sprintf("Error listing notes: %v", err))
	}

	var selected string
	if w.active != nil {
		selected = w.active.Path
	}

	cmd := w.list.SetItems(ParseNoteFiles(files, w.handler.VaultDir(), w.items))
	if selected != "" {
		for i, item := range w.list.Items() {
			if li, ok := item.(ListItem); ok && li.path == selected {
				w.list.Select(i)
				break
			}
		}
	}
	return cmd
}

// Unload runs the plugin unload handlers once.
func (w *Workspace) Unload() {
	if w.unloaded {
		return
	}
	w.unloaded = true
	for _, fn := range w.unload {
		fn()
	}
}

// resize fits the notes list to the current split; it runs on every window
// size change and whenever the right split or its view changes.
func (w *Workspace) resize() {
	if w.width == 0 && w.height == 0 {
		return
	}
	h, v := appStyle.GetFrameSize()
	w.list.SetSize(w.listWidth()-h, w.height-v)
}

func (w *Workspace) listWidth() int {
	if w.rightCollapsed || w.leaf.View() == nil {
		return w.width
	}
	return w.width / 2
}

func (w *Workspace) shortHelp() []key.Binding {
	bindings := []key.Binding{w.keys.toggleFocus, w.keys.toggleRightSplit}
	for _, a := range w.ribbon {
		bindings = append(bindings, a.Key)
	}
	for _, c := range w.commands {
		bindings = append(bindings, c.Key)
	}
	return bindings
}

func (w *Workspace) View() string {
	listView := listStyle.Width(w.listWidth()).Render(w.list.View())

	view := w.leaf.View()
	if view == nil || w.rightCollapsed {
		return appStyle.Render(listView)
	}

	var ribbon []string
	for _, a := range w.ribbon {
		ribbon = append(ribbon, fmt.Sprintf("[%s] %s", a.Icon, a.Title))
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleStyle.Render(view.DisplayText()),
		ribbonStyle.Render(strings.Join(ribbon, " ")),
	)

	_, v := appStyle.GetFrameSize()
	bodyHeight := w.height - v - lipgloss.Height(header)
	bodyWidth := w.width - w.listWidth() - 4

	style := leafStyle
	if w.focus == paneLeaf {
		style = focusedLeafStyle
	}
	leaf := style.
		Height(w.height - v).
		MaxHeight(w.height - v).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, view.Render(bodyWidth, bodyHeight)))

	return appStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, listView, leaf))
}

func Run(w *Workspace) error {
	if _, err := tea.NewProgram(w, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running workspace: %w", err)
	}
	w.Unload()
	return nil
}
