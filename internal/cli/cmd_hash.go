package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/burstbuild/internal/app"
)

func newHashCmd(o *options) *cobra.Command {
	var rspfileContent string

	cmd := &cobra.Command{
		Use:   "hash COMMAND",
		Short: "Print the fingerprint of a literal command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd, func(*app.Config) {})
			if err != nil {
				return err
			}
			h, err := app.New(o.outW, o.errW, cfg).Hash(cmd.Context(), args[0], rspfileContent)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(o.outW, "%016x\n", h)
			return err
		},
	}
	cmd.Flags().StringVar(&rspfileContent, "rspfile-content", "", "Response file content hashed after the command.")
	return cmd
}
