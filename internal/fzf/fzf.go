package fzf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/eagle/internal/gallery"
	"github.com/Paintersrp/eagle/internal/handler"
)

var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder picks a note from the vault with a rendered markdown preview.
type FuzzyFinder struct {
	handler *handler.FileHandler
	Header  string
	files   []string
	labels  []string
}

func NewFuzzyFinder(h *handler.FileHandler, header string) *FuzzyFinder {
	return &FuzzyFinder{handler: h, Header: header}
}

func (f *FuzzyFinder) Run() (gallery.NoteRef, error) {
	return f.RunWithQuery("")
}

func (f *FuzzyFinder) RunWithQuery(query string) (gallery.NoteRef, error) {
	files, err := f.handler.WalkFiles(nil, nil)
	if err != nil {
		return gallery.NoteRef{}, fmt.Errorf("error listing files: %w", err)
	}
	if len(files) == 0 {
		return gallery.NoteRef{}, fmt.Errorf("no notes found in %s", f.handler.VaultDir())
	}
	f.files = files
	f.labels = labels(files)

	idx, err := f.fuzzySelectFile(query)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return gallery.NoteRef{}, ErrNoSelection
	}
	if err != nil {
		return gallery.NoteRef{}, fmt.Errorf("error selecting file: %w", err)
	}
	if idx < 0 {
		return gallery.NoteRef{}, ErrNoSelection
	}

	return gallery.NoteRef{Path: f.files[idx]}, nil
}

func (f *FuzzyFinder) fuzzySelectFile(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	return fuzzyfinder.Find(f.files, func(i int) string {
		return f.labels[i]
	}, options...)
}

// labels formats each note as its title followed by its image count.
func labels(files []string) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			out = append(out, filepath.Base(file)+" [unreadable]")
			continue
		}

		title, tags := handler.ParseFrontMatter(content)
		if title == "" {
			title = filepath.Base(file)
		}

		label := fmt.Sprintf("%s [%d images]", title, len(gallery.ExtractReferences(string(content))))
		if len(tags) > 0 {
			label += fmt.Sprintf(" [Tags: %s]", strings.Join(tags, ", "))
		}
		out = append(out, label)
	}
	return out
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.files[i])
	if err != nil {
		return "Error reading file"
	}

	return RenderMarkdown(string(content), w)
}

// RenderMarkdown renders markdown for the terminal, wrapped at width.
func RenderMarkdown(content string, width int) string {
	if width <= 0 || width > 100 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return content
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
