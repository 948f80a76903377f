package root

import (
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/eagle/internal/config"
	"github.com/Paintersrp/eagle/internal/logging"
	"github.com/Paintersrp/eagle/internal/state"
	"github.com/Paintersrp/eagle/pkg/cmd/gallery"
	"github.com/Paintersrp/eagle/pkg/cmd/resolve"
	"github.com/Paintersrp/eagle/pkg/cmd/settings"
	"github.com/Paintersrp/eagle/pkg/cmd/status"
	"github.com/Paintersrp/eagle/pkg/cmd/vault"
)

var (
	vaultDir   string
	debug      bool
	prettyLogs bool
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var logFile io.Closer

	cmd := &cobra.Command{
		Use:   "eagle",
		Short: "Browse the Eagle images referenced by your notes.",
		Long: heredoc.Doc(`
			A notes workspace with an Eagle gallery panel. The gallery follows the
			note selected in the list and shows every image it references, resolved
			either from embedded base64 content or through a URL template.

			  eagle                      open the workspace
			  eagle --vault ~/notes      open a different vault
			  eagle settings set imageSourceType url
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logFile = logging.Setup(logging.Options{
				Path:   config.GetLogPath(s.Home),
				Level:  s.Config.LogLevel,
				Debug:  debug,
				Pretty: prettyLogs,
			})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
		RunE: gallery.NewCmdGallery(s).RunE,
	}

	cmd.PersistentFlags().
		StringVar(&vaultDir, "vault", "", "Vault directory to use for this command.")
	viper.BindPFlag("vaultdir", cmd.PersistentFlags().Lookup("vault"))

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level.")
	cmd.PersistentFlags().
		BoolVar(&prettyLogs, "pretty-logs", false, "Also write human readable logs to stderr.")

	// Add Child Commands to Root
	cmd.AddCommand(
		gallery.NewCmdGallery(s),
		settings.NewCmdSettings(s),
		resolve.NewCmdResolve(s),
		status.NewCmdStatus(s),
		vault.NewCmdVault(s),
	)

	return cmd, nil
}
