package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justrob12/seclab/internal/content"
)

func greetCommand() *cobra.Command {
	var headers bool
	cmd := &cobra.Command{
		Use:   "greet [NAME]",
		Short: "Render the greeting page for NAME",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			page := content.Render(cmd.Context(), name)

			out := cmd.OutOrStdout()
			if headers {
				keys := make([]string, 0, len(page.Header))
				for key := range page.Header {
					keys = append(keys, key)
				}
				slices.Sort(keys)
				for _, key := range keys {
					if _, err := fmt.Fprintf(out, "%s: %s\n", key, strings.Join(page.Header[key], ", ")); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
			_, err := out.Write(page.Body)
			return err
		},
	}
	cmd.Flags().BoolVar(&headers, "headers", false, "print response headers before the document")
	return cmd
}
