package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/fakestore"
)

func newMockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mock",
		Short: "Run a local fake store api for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			cfg := config.InitConfig(c, "storefront")
			return fakestore.Run(c, cfg.Application)
		},
	}
}
