package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/log"
)

func Start() {
	logger := log.InitLogger("storefront.log").
		With().
		Str(log.KeyAppName, "storefront").
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the store catalog and manage your cart from the terminal",
	}
	rootCmd.AddCommand(
		newProductsCommand(),
		newCategoriesCommand(),
		newSearchCommand(),
		newCartCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newCheckoutCommand(),
		newMockCommand(),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
