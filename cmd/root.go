package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xbt573/pastebin/internal/app"
	pasteController "github.com/xbt573/pastebin/internal/controller/paste"
	pasteService "github.com/xbt573/pastebin/internal/service/paste"
)

var (
	config     Config
	configFile string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (.yaml)")

	registerFlags(rootCmd.PersistentFlags(), &config)

	cobra.OnInitialize(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to load .env", "err", err)
		}

		if err := loadConfig(viper.GetViper(), configFile, rootCmd.PersistentFlags(), &config); err != nil {
			panic(err)
		}

		slog.SetLogLoggerLevel(parseLevel(config.LogLevel))
	})
}

var rootCmd = &cobra.Command{
	Use:          "pastebin",
	Short:        "Minimal pastebin server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		pr, err := openRepository(ctx, config.Database)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := pr.Close(ctx); err != nil {
				slog.Error("failed to close database", "err", err)
			}
		}()

		ps := pasteService.New(pr, pasteService.Options{
			IDLength: config.Settings.IDLength,
		})

		pc := pasteController.New(ps, pasteController.Options{
			StaticDir: config.Static,
		})

		a := app.New(pc, app.Options{
			BodyLimit: config.Settings.BodyLimit,
		})

		slog.Info("running on", "addr", config.Listen, "database", config.Database.Type)
		if err := a.Listen(config.Listen, ctx); err != nil {
			return err
		}

		slog.Info("shut down")
		return nil
	},
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		slog.Warn("unknown log level, using info", "level", s)
		return slog.LevelInfo
	}

	return level
}

func Execute() error {
	return rootCmd.Execute()
}
