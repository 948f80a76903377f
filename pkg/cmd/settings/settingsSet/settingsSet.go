package settingsSet

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/settings"
	"github.com/Paintersrp/eagle/internal/state"
)

func NewCmdSettingsSet(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change one gallery setting",
		Long: heredoc.Doc(`
			Changes one setting and saves immediately. Keys: serverUrl,
			imageSourceType (url or base64), imageBaseUrl, defaultColWidth.
			Without a value you are prompted for one.
		`),
		Example: heredoc.Doc(`
			eagle settings set imageSourceType url
			eagle settings set imageBaseUrl "https://cdn.example.com/{name}.png"
			eagle settings set defaultColWidth
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			current := s.Settings.Get()

			if _, err := current.Get(key); err != nil {
				return err
			}

			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				v, err := prompt(key, current)
				if err != nil {
					return err
				}
				value = v
			}

			updated, err := s.Settings.Set(key, value)
			if err != nil {
				return err
			}

			saved, _ := updated.Get(key)
			cmd.Printf("Updated and Saved: %s = %s\n", key, saved)
			return nil
		},
	}

	return cmd
}

func prompt(key string, current settings.Settings) (string, error) {
	if key == settings.KeyImageSourceType {
		sel := selection.New(
			"Please select an image source type (url: Website URL, base64: Base64 Content).",
			[]string{string(settings.ByUrlTemplate), string(settings.ByEmbeddedContent)},
		)
		sel.Filter = nil

		choice, err := sel.RunPrompt()
		if err != nil {
			return "", fmt.Errorf("error selecting image source type: %w", err)
		}
		return choice, nil
	}

	initial, _ := current.Get(key)
	input := textinput.New(fmt.Sprintf("New value for %s:", key))
	input.InitialValue = initial

	value, err := input.RunPrompt()
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", key, err)
	}
	return value, nil
}
