package main

import (
	"context"
	"os"

	"github.com/fadilmartias/fairfound-coach/internal/config"
	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	asJSON   bool
)

// newGateway is swapped in tests.
var newGateway = func(ctx context.Context, log logger.Logger) (*gateway.Gateway, error) {
	opts := service.OptionsFromConfig(config.LoadGeminiConfig(), config.LoadOpenRouterConfig())
	gen, _, err := service.SelectProvider(ctx, opts, log)
	if err != nil {
		return nil, err
	}
	return gateway.New(gen, log), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fairfound",
		Short:         "Freelancer profile analysis, proposals and portfolio copy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print raw JSON")

	root.AddCommand(newAnalyzeCmd(), newProposalCmd(), newPortfolioCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
