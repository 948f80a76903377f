package settings

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/settings"
	"github.com/Paintersrp/eagle/internal/state"
	"github.com/Paintersrp/eagle/pkg/cmd/settings/settingsSet"
)

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s"},
		Short:   "Show the gallery settings",
		Long: heredoc.Doc(`
			Lists the gallery settings stored in ~/.eagle/data.yaml. The image base
			URL only applies when the image source type is "url".
		`),
		Example: "eagle settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			List(cmd, s.Settings.Get())
			return nil
		},
	}

	cmd.AddCommand(settingsSet.NewCmdSettingsSet(s))
	return cmd
}

// List prints every setting, flagging the base URL when it has no effect.
func List(cmd *cobra.Command, current settings.Settings) {
	for _, key := range settings.Keys {
		value, _ := current.Get(key)
		if value == "" {
			value = `""`
		}

		switch key {
		case settings.KeyImageSourceType:
			value += " (" + current.ImageSourceType.Label() + ")"
		case settings.KeyImageBaseURL:
			if !current.BaseURLActive() {
				value += " (inactive)"
			}
		}

		cmd.Printf("%-16s %s\n", key, value)
	}
}
