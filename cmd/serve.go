package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-advisor/internal/analysis"
	"github.com/spigell/career-advisor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	c, err := newCatalog(config)
	if err != nil {
		logger.Fatal("building the job catalog", zap.Error(err))
	}

	store, closeStore, err := newStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("creating a result store", zap.Error(err))
	}
	defer closeStore()

	advisor, err := newAdvisor(ctx, config.Guidance, logger)
	if err != nil {
		logger.Fatal("creating a guidance advisor", zap.Error(err))
	}

	logger.Info("starting server",
		zap.Int("jobs", c.Len()),
		zap.Int("skill_aliases", c.Normalizer().Aliases()),
		zap.String("guidance_provider", config.Guidance.Provider),
	)

	srv := server.New(analysis.New(c, store, logger), store, advisor, logger)
	if err := srv.Run(ctx, config.Server.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
