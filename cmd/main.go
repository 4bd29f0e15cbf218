// Package main is the production entry point for the beetbox music player.
//
// Build:
//
//	go build -o build/beetbox ./cmd
//
// Run:
//
//	./build/beetbox --config ~/beetbox.toml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/beetbox/internal/app"
	"github.com/tejashwikalptaru/beetbox/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		audio      string
	)

	cmd := &cobra.Command{
		Use:          "beetbox",
		Short:        "A desktop music player with playlists and favourites",
		Version:      app.GetVersionInfo().FullString(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("audio") {
				cfg.Player.Audio = audio
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML file loaded after the user configuration")
	cmd.Flags().StringVar(&audio, "audio", config.AudioBeep, `audio backend: "beep" or "mock"`)
	return cmd
}

func run(cfg *config.Config) error {
	application, err := app.NewApplication(app.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Blocks until the window is closed
	application.Run()

	if err := application.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		return err
	}
	return nil
}
