package cmd

import (
	"github.com/spf13/cobra"

	"bytesize/internal/app"
)

func newServeCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the render/parse HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application := app.Build(st.cfg)
			application.Run()
			return application.Err()
		},
	}
}
