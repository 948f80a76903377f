package vaultChange

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/state"
)

func NewCmdVaultChange(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "change [dir]",
		Aliases: []string{"c"},
		Short:   "Change the notes vault",
		Long: heredoc.Doc(`
			Stores dir as the vault directory in ~/.eagle/cfg.yaml. The directory
			must already exist.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			ok, err := vaultExists(dir)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("the specified vault %s does not exist", dir)
			}

			if err := s.Config.ChangeVault(dir); err != nil {
				return err
			}

			cmd.Printf("Successfully changed to vault: %s\n", s.Config.VaultDir)
			return nil
		},
	}

	return cmd
}

func vaultExists(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if !fi.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}

	return true, nil
}
