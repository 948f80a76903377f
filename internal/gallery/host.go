package gallery

import (
	"context"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/eagle/internal/settings"
)

// NoteRef identifies a note in the vault by its path.
type NoteRef struct {
	Path string
}

func (n NoteRef) Name() string {
	return strings.TrimSuffix(filepath.Base(n.Path), filepath.Ext(n.Path))
}

// Host is the part of the surrounding workspace the controller consumes.
type Host interface {
	// ActiveNote returns the focused note, if any.
	ActiveNote() (NoteRef, bool)
	// ReadNote returns the full text of note. It fails for missing or
	// unreadable notes.
	ReadNote(ctx context.Context, note NoteRef) (string, error)
}

// Props is everything a render instance receives at construction.
type Props struct {
	Note     NoteRef
	Content  string
	Settings settings.Settings
}

// RenderInstance is a mounted gallery. Destroy releases it; a destroyed
// instance is never reused.
type RenderInstance interface {
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Destroy()
}

// RenderFactory constructs a render instance from props.
type RenderFactory func(Props) RenderInstance
