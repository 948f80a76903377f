package gallery

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/eagle/internal/gallery"
)

const (
	// Terminal cells are treated as 8px wide when sizing columns.
	pixelsPerCell = 8
	minCardWidth  = 12
	cardHeight    = 4
	headerHeight  = 2
)

type uriCopiedMsg struct {
	uri string
	err error
}

// Surface is the terminal render instance: a grid of cards, one per image
// reference found in the note.
type Surface struct {
	props     gallery.Props
	images    []gallery.ResolvedImage
	keys      *keyMap
	cursor    int
	columns   int
	status    string
	destroyed bool

	writeClipboard func(string) error
}

// NewSurface is the gallery.RenderFactory used by the gallery view.
func NewSurface(p gallery.Props) gallery.RenderInstance {
	return newSurface(p, clipboard.WriteAll)
}

func newSurface(p gallery.Props, writeClipboard func(string) error) *Surface {
	refs := gallery.ExtractReferences(p.Content)
	return &Surface{
		props:          p,
		images:         gallery.ResolveAll(refs, p.Settings),
		keys:           newKeyMap(),
		columns:        1,
		writeClipboard: writeClipboard,
	}
}

func (s *Surface) Images() []gallery.ResolvedImage {
	return s.images
}

func (s *Surface) Selected() (gallery.ResolvedImage, bool) {
	if s.destroyed || len(s.images) == 0 {
		return gallery.ResolvedImage{}, false
	}
	return s.images[s.cursor], true
}

func (s *Surface) Update(msg tea.Msg) tea.Cmd {
	if s.destroyed {
		return nil
	}

	switch msg := msg.(type) {
	case uriCopiedMsg:
		if msg.err != nil {
			s.status = fmt.Sprintf("Error copying uri: %v", msg.err)
		} else {
			s.status = "Copied " + msg.uri
		}
		return nil

	case tea.KeyMsg:
		if len(s.images) == 0 {
			return nil
		}

		switch {
		case key.Matches(msg, s.keys.left):
			s.move(-1)
		case key.Matches(msg, s.keys.right):
			s.move(1)
		case key.Matches(msg, s.keys.up):
			s.move(-s.columns)
		case key.Matches(msg, s.keys.down):
			s.move(s.columns)
		case key.Matches(msg, s.keys.copy):
			return s.copySelected()
		}
	}

	return nil
}

func (s *Surface) move(delta int) {
	next := s.cursor + delta
	if next < 0 || next >= len(s.images) {
		return
	}
	s.cursor = next
}

func (s *Surface) copySelected() tea.Cmd {
	img, ok := s.Selected()
	if !ok {
		return nil
	}
	write := s.writeClipboard
	return func() tea.Msg {
		return uriCopiedMsg{uri: img.URI, err: write(img.URI)}
	}
}

func (s *Surface) cardWidth() int {
	w := s.props.Settings.DefaultColWidth / pixelsPerCell
	if w < minCardWidth {
		return minCardWidth
	}
	return w
}

func (s *Surface) View(width, height int) string {
	if s.destroyed {
		return ""
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleStyle.Render(s.props.Note.Name()),
		countStyle.Render(fmt.Sprintf("%d images · %s", len(s.images), s.props.Settings.ImageSourceType.Label())),
	)

	if len(s.images) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, emptyStyle.Render("No images in this note"))
	}

	cw := s.cardWidth()
	outer := cw + 2
	s.columns = 1
	if width > outer {
		s.columns = width / outer
	}

	visibleRows := 1
	if height > headerHeight+cardHeight {
		visibleRows = (height - headerHeight) / cardHeight
	}
	cursorRow := s.cursor / s.columns
	top := 0
	if cursorRow >= visibleRows {
		top = cursorRow - visibleRows + 1
	}

	var rows []string
	for row := top; row < top+visibleRows; row++ {
		start := row * s.columns
		if start >= len(s.images) {
			break
		}
		end := start + s.columns
		if end > len(s.images) {
			end = len(s.images)
		}

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, s.renderCard(i, cw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	parts := append([]string{header}, rows...)
	if s.status != "" {
		parts = append(parts, statusStyle.Render(s.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *Surface) renderCard(i, width int) string {
	img := s.images[i]
	inner := width - 2

	label := img.Ref.Alt
	if label == "" {
		label = img.Ref.Value
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		labelStyle.Copy().MaxWidth(inner).Render(label),
		uriStyle.Copy().MaxWidth(inner).Render(img.URI),
	)

	style := cardStyle
	if i == s.cursor {
		style = selectedCardStyle
	}
	return style.Copy().Width(width).Render(body)
}

// Destroy drops the resolved images; the surface renders nothing afterwards.
func (s *Surface) Destroy() {
	s.destroyed = true
	s.images = nil
	s.cursor = 0
	s.status = ""
}
