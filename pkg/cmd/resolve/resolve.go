package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/eagle/internal/fzf"
	"github.com/Paintersrp/eagle/internal/gallery"
	"github.com/Paintersrp/eagle/internal/state"
)

func NewCmdResolve(s *state.State) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "resolve [note]",
		Aliases: []string{"r"},
		Short:   "Print the resolved image URIs of a note.",
		Long: heredoc.Doc(`
			Extracts every image referenced by a note and prints the URI the gallery
			would render for it under the current settings. Without a note argument
			a fuzzy finder is opened.
		`),
		Example: heredoc.Doc(`
			eagle resolve projects/moodboard.md
			eagle resolve --raw moodboard.md | xargs -n1 curl -O
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := s.Handler()
			if err != nil {
				return err
			}

			var note gallery.NoteRef
			if len(args) == 1 {
				note.Path = args[0]
			} else {
				note, err = fzf.NewFuzzyFinder(h, "Select a note to resolve").Run()
				if errors.Is(err, fzf.ErrNoSelection) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			content, err := h.ReadNote(ctx, note)
			if err != nil {
				return err
			}

			images := gallery.ResolveAll(gallery.ExtractReferences(content), s.Settings.Get())
			return render(cmd.OutOrStdout(), images, raw, terminalWidth())
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print one URI per line without formatting")
	return cmd
}

func render(w io.Writer, images []gallery.ResolvedImage, raw bool, width int) error {
	if raw {
		for _, img := range images {
			if _, err := fmt.Fprintln(w, img.URI); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprint(w, fzf.RenderMarkdown(table(images), width))
	return err
}

func table(images []gallery.ResolvedImage) string {
	if len(images) == 0 {
		return "_No images referenced._\n"
	}

	var b strings.Builder
	b.WriteString("| # | reference | uri |\n|---|---|---|\n")
	for i, img := range images {
		ref := img.Ref.Value
		if img.Ref.Alt != "" && img.Ref.Alt != ref {
			ref = img.Ref.Alt + " (" + ref + ")"
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escapeCell(ref), escapeCell(img.URI))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}
