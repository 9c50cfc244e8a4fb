package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logFile string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flc",
	Short: "flc is the Linux x86-64 backend for the foolang toolchain",
	Long: `flc compiles a JSON-encoded compilation unit — typed linear IR — into
a Linux x86-64 ELF64 relocatable object. It carries no lexer or parser:
the IR it consumes is produced by a separate frontend.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return initLogging() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default target tag, output directory)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write structured logs to this file")
	rootCmd.AddCommand(buildCmd, dumpCmd)
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("flc: warning: %v", err))
	}
}

func initLogging() error {
	initConfig()

	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, nil)}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, nil))
	}
	logger = slog.New(slogmulti.Fanout(handlers...))
	return nil
}
