package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/justrob12/seclab/internal/config"
)

func configCommand(configFilePath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Write(*configFilePath, config.Default()); err != nil {
				return err
			}
			slog.InfoContext(cmd.Context(), "wrote configuration", slog.String("path", *configFilePath))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), *configFilePath)
			return err
		},
	})
	return cmd
}
