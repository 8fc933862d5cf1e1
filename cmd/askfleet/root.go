package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mmichie/askfleet/internal/server"
	"github.com/mmichie/askfleet/pkg/config"
	"github.com/mmichie/askfleet/pkg/directory"
	"github.com/mmichie/askfleet/pkg/fanout"
	"github.com/mmichie/askfleet/pkg/provider"
)

var (
	listenAddr    string
	directoryPath string
)

// RootCmd is the root command for askfleet
var RootCmd = &cobra.Command{
	Use:   "askfleet",
	Short: "askfleet fans a prompt out to many LLM providers at once",
	Long: `askfleet is an HTTP service that forwards a prompt to every configured
LLM provider concurrently and returns one ordered list of answers.
Provider credentials come from environment variables; a provider without
a credential answers with placeholder text instead of failing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// A missing .env file is fine; the environment may be set directly.
		godotenv.Load()
	})

	RootCmd.PersistentFlags().StringVar(&listenAddr, "addr", "", "HTTP listen address (default :8080)")
	RootCmd.PersistentFlags().StringVar(&directoryPath, "directory", "", "path to the AI directory JSON file")

	RootCmd.AddCommand(versionCmd)
}

func serve() error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	settings := config.FromEnvironment()
	if listenAddr != "" {
		settings.ListenAddr = listenAddr
	}
	if directoryPath != "" {
		settings.DirectoryPath = directoryPath
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	registry, err := provider.BuildRegistry(settings)
	if err != nil {
		return err
	}
	for _, info := range registry.AllInfo() {
		log.Info("provider",
			zap.String("name", info.Name),
			zap.Bool("configured", info.Configured),
			zap.String("model", info.Model))
	}

	store := directory.NewStore(settings.DirectoryPath)
	if err := store.Load(); err != nil {
		// The directory is auxiliary; serve without it.
		log.Warn("directory unavailable", zap.Error(err))
	}

	aggregator := fanout.New(registry, settings.MaxPromptChars)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(settings, aggregator, registry, store, log).Run(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of askfleet",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("askfleet v0.1.0")
	},
}
