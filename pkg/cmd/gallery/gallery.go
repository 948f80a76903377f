package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/fzf"
	"github.com/Paintersrp/eagle/internal/plugin"
	"github.com/Paintersrp/eagle/internal/state"
	"github.com/Paintersrp/eagle/internal/tui/workspace"
)

func NewCmdGallery(s *state.State) *cobra.Command {
	var (
		pick bool
		note string
	)

	cmd := &cobra.Command{
		Use:     "gallery",
		Aliases: []string{"g"},
		Short:   "Open the notes workspace with the Eagle gallery.",
		Long: heredoc.Doc(`
			Opens the notes workspace. The gallery view is placed in the right split
			and follows the note selected in the list.

			  tab      switch focus between the list and the gallery
			  ctrl+e   reopen the gallery
			  ctrl+t   toggle between URL template and base64 content
			  ctrl+b   toggle the right split
		`),
		Example: "eagle gallery --pick",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), s, pick, note)
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "Pick the initial note with a fuzzy finder")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Path of the note to select initially")
	return cmd
}

func run(ctx context.Context, s *state.State, pick bool, note string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	h, err := s.Handler()
	if err != nil {
		return err
	}

	if pick {
		ref, err := fzf.NewFuzzyFinder(h, "Select a note").Run()
		if errors.Is(err, fzf.ErrNoSelection) {
			return nil
		}
		if err != nil {
			return err
		}
		note = ref.Path
	}

	watcher, err := s.StartWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("vault watcher unavailable, note edits will not refresh the gallery")
		watcher = nil
	}
	defer s.Close()

	w, err := workspace.New(h, watcher)
	if err != nil {
		return err
	}

	if note != "" {
		path, err := h.NotePath(note)
		if err != nil {
			return err
		}
		if !w.Select(path) {
			return fmt.Errorf("note %s is not in vault %s", note, h.VaultDir())
		}
	}

	w.Install(plugin.New(ctx, s.Settings))
	return workspace.Run(w)
}
