package gallery

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/eagle/internal/constants"
	"github.com/Paintersrp/eagle/internal/gallery"
	"github.com/Paintersrp/eagle/internal/settings"
)

// View adapts the gallery controller to the workspace's view capability set.
type View struct {
	controller *gallery.Controller
	help       help.Model
	keys       *keyMap
}

func NewView(ctx context.Context, host gallery.Host, store *settings.Store) *View {
	return newView(ctx, host, store.Get, NewSurface)
}

func newView(
	ctx context.Context,
	host gallery.Host,
	current func() settings.Settings,
	factory gallery.RenderFactory,
) *View {
	return &View{
		controller: gallery.NewController(ctx, host, current, factory),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func (v *View) ViewType() string    { return constants.ViewType }
func (v *View) DisplayText() string { return constants.ViewDisplayText }
func (v *View) Icon() string        { return constants.ViewIcon }

func (v *View) OnShow() tea.Cmd {
	return v.controller.OnShow()
}

func (v *View) OnHostTeardown() {
	v.controller.OnHostTeardown()
}

func (v *View) LoadFor(note *gallery.NoteRef) tea.Cmd {
	return v.controller.LoadFor(note)
}

func (v *View) Clear() {
	v.controller.Clear()
}

func (v *View) Controller() *gallery.Controller {
	return v.controller
}

func (v *View) Update(msg tea.Msg) tea.Cmd {
	return v.controller.Update(msg)
}

func (v *View) Render(width, height int) string {
	if !v.controller.Populated() {
		return emptyStyle.Render("Open a note to see its images")
	}

	footer := v.help.ShortHelpView(v.keys.ShortHelp())
	body := v.controller.View(width, height-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
