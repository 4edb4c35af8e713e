package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lushmo/hairbloom/internal/log"
)

const AppStorefront = "storefront"

func Start() {
	logger := log.InitLogger("/var/log/hairbloom.log").
		With().
		Str(log.KeyAppName, AppStorefront).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "hairbloom"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "storefront",
		Short: "Run storefront service",
		Run: func(cmd *cobra.Command, args []string) {
			runStorefrontService(cmd.Context())
		},
	})
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
