// Package cmd implements the voxlink command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/voxlink/internal/config"
	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/telemetry"
)

var (
	cfgFile string
	cfg     config.Config

	// configErr is set by initConfig and surfaced by the first command that needs config.
	configErr       error
	logCleanup      func()
	shutdownTracing telemetry.Shutdown
)

var rootCmd = &cobra.Command{
	Use:   "voxlink",
	Short: "Voice orchestration for Lavalink-style audio nodes",
	Long: `voxlink binds Discord voice gateway events to audio backend nodes.

It can build voice state payloads, resolve tracks through a node and replay
recorded gateway dispatches through the orchestrator.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.voxlink.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("client-id", "", "bot user ID reported to nodes")
}

func initConfig() {
	configErr = nil
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".voxlink")
		viper.SetConfigType("yaml")
	}

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("client_id", rootCmd.PersistentFlags().Lookup("client-id"))

	d := config.Defaults()
	viper.SetDefault("client_name", d.ClientName)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
	viper.SetDefault("tracing.exporter", d.Tracing.Exporter)

	viper.SetEnvPrefix("VOXLINK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range []string{"client_id", "client_name", "log.level", "log.format", "tracing.exporter", "tracing.endpoint"} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	logger, cleanup, err := log.NewLogger(cfg.LogOptions())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	log.SetLogger(logger)
	logCleanup = cleanup

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Setup(ctx, cfg.TelemetryOptions())
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	shutdownTracing = shutdown

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug(log.CatConfig, "Loaded config", "file", used)
	}
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	var errs []error
	if shutdownTracing != nil {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down tracing: %w", err))
		}
		shutdownTracing = nil
	}
	_ = log.Sync()
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return errors.Join(errs...)
}
