// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tileboard CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tileboard CLI.
var rootCmd = &cobra.Command{
	Use:   "tileboard",
	Short: "Ask questions of two query services and arrange the answers as tiles",
	Long: `tileboard sends questions to a document-upload or a datasource query
service and keeps each answer as a tile. Every answer starts in its own
group; tiles can be dragged between groups and groups renamed.

Use "board" for the interactive board, "query" for a single question,
"batch" to run a file of questions, and "history" to list past dispatches.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tileboard.yaml or ~/.config/tileboard/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tileboard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tileboard"))
		}
	}

	setDefaults()
	bindEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
