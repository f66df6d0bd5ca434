package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quickrmbg/quick-rmbg/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}

			settings, err := config.LoadSettings(cfg.SettingsPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v; showing defaults\n", err)
			}

			data, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}

			fmt.Printf("Config file: %s\n", cfg.SettingsPath)
			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.SettingsPath); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cfg.SettingsPath)
			}

			if err := config.SaveSettings(cfg.SettingsPath, config.DefaultSettings()); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", cfg.SettingsPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
