package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func hashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Hash a password",
		Long: "Reads a password from stdin or the interactive prompt and prints its\n" +
			"digest using the configured algorithm and cost.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := getConfig(cmd.Context())
			if err != nil {
				return err
			}
			hasher, err := cfg.Hasher()
			if err != nil {
				return err
			}
			passwd, err := promptSecret(cmd, "password: ")
			if err != nil {
				return err
			}
			digest, err := hasher.Hash(passwd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", digest)
			return err
		},
	}
}

func verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify DIGEST",
		Short: "Check a password against a digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := getConfig(cmd.Context())
			if err != nil {
				return err
			}
			hasher, err := cfg.Hasher()
			if err != nil {
				return err
			}
			passwd, err := promptSecret(cmd, "password: ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hasher.Verify(passwd, []byte(args[0])))
			return err
		},
	}
}
