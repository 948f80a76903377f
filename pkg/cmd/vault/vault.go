package vault

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/state"
	"github.com/Paintersrp/eagle/pkg/cmd/vault/vaultChange"
)

func NewCmdVault(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vault",
		Aliases: []string{"v"},
		Short:   "Show the notes vault",
		Long: heredoc.Doc(`
			Prints the vault directory in use. It comes from --vault, then
			EAGLE_VAULT, then vaultdir in ~/.eagle/cfg.yaml.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vault := s.Vault()
			if vault == "" {
				cmd.Println("No vault configured. Run `eagle vault change [dir]`.")
				return nil
			}
			cmd.Println(vault)
			return nil
		},
	}

	cmd.AddCommand(vaultChange.NewCmdVaultChange(s))

	return cmd
}
