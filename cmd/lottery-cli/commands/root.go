package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/internal/components/chrono"
	"receiptlottery/internal/components/telemetry"
	"receiptlottery/lib/configutil"
	"receiptlottery/lib/platforms/lottery"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type Config struct {
	lottery.Config
	Telemetry telemetry.Config `json:"telemetry"`
	LogLevel  string           `json:"log_level"`
}

var (
	configPath *string
	dumpDir    *string
)

func init() {
	configPath = rootCmd.PersistentFlags().String(
		"config",
		"lottery.json5",
		"The config file name, looked up in the working directory and its parents.",
	)
	dumpDir = rootCmd.PersistentFlags().String(
		"dump",
		"",
		"Write every HTTP exchange to this directory.",
	)
}

var rootCmd = &cobra.Command{
	Use:     "lottery-cli",
	Short:   "lottery-cli is a CLI for the receipt lottery portal.",
	Version: lottery.VERSION,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		cfg, err := configutil.ReadRecursively(*configPath, Config{
			Config:   lottery.DefaultConfig(),
			LogLevel: "info",
		})
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}

		if *dumpDir != "" {
			cfg.DumpDirectory = *dumpDir
		}

		logger := telemetry.NewTextLogger(os.Stderr, cfg.LogLevel)
		slog.SetDefault(logger)
		tel := telemetry.NewSlogAPI(logger)

		otel, err := telemetry.Setup(cmd.Context(), "lottery-cli", cfg.Telemetry, tel)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		clock, err := chrono.NewStandardImpl(cfg.Location)
		if err != nil {
			return fmt.Errorf("load location: %w", err)
		}
		client, err := lottery.NewClient(cfg.Config, tel, clock)
		if err != nil {
			return err
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Client:    client,
			Tel:       tel,
			Clock:     clock,
			Telemetry: otel,
		}))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return globals.Get(cmd.Context()).Telemetry.Shutdown(context.Background())
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
