// Package plugin registers the Eagle gallery with the workspace: the view
// type, its ribbon action and commands, and the event handlers that keep the
// gallery following the active note.
package plugin

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/Paintersrp/eagle/internal/constants"
	"github.com/Paintersrp/eagle/internal/gallery"
	"github.com/Paintersrp/eagle/internal/settings"
	tuigallery "github.com/Paintersrp/eagle/internal/tui/gallery"
	"github.com/Paintersrp/eagle/internal/tui/workspace"
)

const (
	CommandOpenGallery       = "open-gallery-view"
	CommandToggleImageSource = "toggle-image-source"
)

type Plugin struct {
	ctx   context.Context
	store *settings.Store
	host  *workspace.Workspace
	view  *tuigallery.View
}

func New(ctx context.Context, store *settings.Store) *Plugin {
	return &Plugin{ctx: ctx, store: store}
}

func (p *Plugin) Load(w *workspace.Workspace) tea.Cmd {
	p.host = w

	w.RegisterView(constants.ViewType, func(*workspace.Leaf) workspace.View {
		p.view = tuigallery.NewView(p.ctx, w, p.store)
		return p.view
	})

	w.OnLayoutReady(p.onLayoutReady)

	w.AddRibbonAction(workspace.Action{
		Key: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", constants.ViewDisplayText),
		),
		Icon:  constants.ViewIcon,
		Title: constants.ViewDisplayText,
		Run:   p.OpenGalleryView,
	})

	w.AddCommand(workspace.Command{
		ID:   CommandOpenGallery,
		Name: "Open Eagle gallery",
		Key: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open gallery"),
		),
		Run: p.OpenGalleryView,
	})

	w.AddCommand(workspace.Command{
		ID:   CommandToggleImageSource,
		Name: "Toggle image source",
		Key: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle source"),
		),
		Run: p.ToggleImageSource,
	})

	w.OnActiveViewChanged(p.reloadGallery)
	w.OnNoteOpened(p.reloadGallery)
	w.OnUnload(p.unload)

	return p.reloadGallery()
}

// View returns the mounted gallery view, or nil.
func (p *Plugin) View() *tuigallery.View {
	return p.view
}

func (p *Plugin) onLayoutReady() tea.Cmd {
	if len(p.host.LeavesOfType(constants.ViewType)) > 0 {
		return nil
	}

	leaf := p.host.RightLeaf()
	cmd := p.host.SetViewState(leaf, constants.ViewType)
	p.host.RevealLeaf(leaf)
	return cmd
}

// OpenGalleryView replaces every gallery leaf with a fresh view in the right
// split and reveals it.
func (p *Plugin) OpenGalleryView() tea.Cmd {
	p.host.DetachLeavesOfType(constants.ViewType)
	p.view = nil

	leaf := p.host.RightLeaf()
	cmd := p.host.SetViewState(leaf, constants.ViewType)
	p.host.RevealLeaf(leaf)
	return cmd
}

// ToggleImageSource flips between URL template and embedded content, saves
// and reloads the gallery.
func (p *Plugin) ToggleImageSource() tea.Cmd {
	current := p.store.Get()

	next := settings.ByUrlTemplate
	if current.ImageSourceType == settings.ByUrlTemplate {
		next = settings.ByEmbeddedContent
	}

	updated, err := p.store.Set(settings.KeyImageSourceType, string(next))
	if err != nil {
		log.Error().Err(err).Msg("failed to save image source type")
		return p.host.SetStatus(fmt.Sprintf("Failed to save settings: %v", err))
	}

	return tea.Batch(
		p.host.SetStatus("Image source: "+updated.ImageSourceType.Label()),
		p.reloadGallery(),
	)
}

func (p *Plugin) reloadGallery() tea.Cmd {
	if p.view == nil {
		return nil
	}

	note, ok := p.host.ActiveNote()
	if !ok {
		p.view.Clear()
		return nil
	}

	return p.view.LoadFor(&gallery.NoteRef{Path: note.Path})
}

func (p *Plugin) unload() {
	p.host.DetachLeavesOfType(constants.ViewType)
	p.view = nil
}
