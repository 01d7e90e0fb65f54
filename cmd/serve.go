package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/secrets"
	"github.com/spigell/cv2profile/internal/server"
)

const serverPasswordEnv = "CV2PROFILE_SERVER_PASSWORD"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address (default from server.addr)")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("preparing the extractor", zap.Error(err))
	}

	deps := server.Dependencies{Extractor: extractor}

	publisher, err := newPublisher(config.Publish, logger)
	switch {
	case err != nil:
		logger.Warn("skipping publishing", zap.Error(err))
	case publisher != nil:
		defer publisher.Close()
		deps.Publisher = publisher
	}

	password, err := secrets.Optional(secrets.Source{
		Name: "server password",
		File: config.Server.PasswordFile,
		Env:  serverPasswordEnv,
	})
	if err != nil {
		logger.Fatal("loading server password", zap.Error(err))
	}
	if config.Server.Username != "" && password == "" {
		logger.Fatal("server password is required when server.username is set",
			zap.String("hint", "set "+serverPasswordEnv+" or server.password-file"),
		)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            config.Server.Addr,
		ShutdownTimeout: config.Server.ShutdownTimeout,
		MaxUploadBytes:  config.Server.MaxUploadBytes,
		Username:        config.Server.Username,
		Password:        password,
		Dependencies:    deps,
	})

	logger.Info("starting the cv2profile api", zap.String("version", version))

	if err := api.Start(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
