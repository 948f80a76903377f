package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/eagle"
	"github.com/Paintersrp/eagle/internal/state"
)

func NewCmdStatus(s *state.State) *cobra.Command {
	var itemID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the Eagle server.",
		Long: heredoc.Doc(`
			Queries the Eagle application at the configured serverUrl and prints its
			version. With --item, prints the metadata of one library item instead.
		`),
		Example: "eagle status --item KBHG6KA0Y5S9W",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			serverURL := s.Settings.Get().ServerURL
			client := eagle.NewClient(serverURL)

			if itemID != "" {
				item, err := client.ItemInfo(ctx, itemID)
				if err != nil {
					return err
				}
				printItem(cmd, item)
				return nil
			}

			info, err := client.ApplicationInfo(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("Eagle %s (build %s) on %s at %s\n", info.Version, info.BuildVersion, info.Platform, serverURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "Print the metadata of one item")
	return cmd
}

func printItem(cmd *cobra.Command, item *eagle.ItemInfo) {
	rows := [][2]string{
		{"ID", item.ID},
		{"File", item.FileName()},
		{"Size", fmt.Sprintf("%d bytes", item.Size)},
		{"Dimensions", fmt.Sprintf("%dx%d", item.Width, item.Height)},
		{"Tags", strings.Join(item.Tags, ", ")},
		{"Folders", strings.Join(item.Folders, ", ")},
		{"URL", item.URL},
		{"Annotation", item.Annotation},
	}
	for _, r := range rows {
		cmd.Printf("%-11s %s\n", r[0]+":", r[1])
	}
}
