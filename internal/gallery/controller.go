package gallery

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Paintersrp/eagle/internal/settings"
)

// NoteContentMsg carries the result of an asynchronous note read back into
// the update loop.
type NoteContentMsg struct {
	Note    NoteRef
	Content string
	Err     error

	owner *Controller
}

// Session is the single gallery view's mutable state. Only the Controller
// touches it.
type Session struct {
	handle   RenderInstance
	handleID string
	bound    *NoteRef
}

// Controller keeps at most one render instance mounted, always showing the
// active note or nothing.
type Controller struct {
	ctx      context.Context
	host     Host
	settings func() settings.Settings
	factory  RenderFactory
	session  Session
}

func NewController(
	ctx context.Context,
	host Host,
	current func() settings.Settings,
	factory RenderFactory,
) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Controller{
		ctx:      ctx,
		host:     host,
		settings: current,
		factory:  factory,
	}
}

// LoadFor destroys whatever is mounted and, when note is non-nil, starts
// reading it. The returned command performs the read; its NoteContentMsg
// must be passed back to Update. Pending reads are never cancelled.
func (c *Controller) LoadFor(note *NoteRef) tea.Cmd {
	c.Clear()
	if note == nil {
		return nil
	}

	target := *note
	ctx, host := c.ctx, c.host
	return func() tea.Msg {
		content, err := host.ReadNote(ctx, target)
		return NoteContentMsg{Note: target, Content: content, Err: err, owner: c}
	}
}

// Clear destroys the mounted instance, if any, and unbinds the note.
func (c *Controller) Clear() {
	if c.session.handle != nil {
		log.Debug().
			Str("instance", c.session.handleID).
			Msg("destroying gallery render instance")
		c.session.handle.Destroy()
	}
	c.session = Session{}
}

// OnShow loads the host's active note, or clears when there is none.
func (c *Controller) OnShow() tea.Cmd {
	if note, ok := c.host.ActiveNote(); ok {
		return c.LoadFor(&note)
	}
	return c.LoadFor(nil)
}

// OnHostTeardown leaves the session Empty before the host drops the view.
func (c *Controller) OnHostTeardown() {
	c.Clear()
}

// Update completes reads started by LoadFor and forwards everything else to
// the mounted instance. Reads complete in any order; the last one to
// complete is what stays mounted.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoteContentMsg:
		if msg.owner != c {
			return nil
		}
		c.attach(msg)
		return nil
	}

	if c.session.handle != nil {
		return c.session.handle.Update(msg)
	}
	return nil
}

func (c *Controller) attach(msg NoteContentMsg) {
	// Another read may have attached since LoadFor ran.
	c.Clear()

	if msg.Err != nil {
		log.Debug().
			Err(msg.Err).
			Str("note", msg.Note.Path).
			Msg("note read failed, gallery left empty")
		return
	}

	handle := c.factory(Props{
		Note:     msg.Note,
		Content:  msg.Content,
		Settings: c.settings(),
	})
	if handle == nil {
		return
	}

	note := msg.Note
	c.session = Session{
		handle:   handle,
		handleID: uuid.NewString(),
		bound:    &note,
	}
	log.Debug().
		Str("instance", c.session.handleID).
		Str("note", note.Path).
		Msg("attached gallery render instance")
}

// Populated reports whether a render instance is mounted.
func (c *Controller) Populated() bool {
	return c.session.handle != nil
}

// Bound returns the note currently displayed.
func (c *Controller) Bound() (NoteRef, bool) {
	if c.session.bound == nil {
		return NoteRef{}, false
	}
	return *c.session.bound, true
}

// View renders the mounted instance, or nothing when Empty.
func (c *Controller) View(width, height int) string {
	if c.session.handle == nil {
		return ""
	}
	return c.session.handle.View(width, height)
}
