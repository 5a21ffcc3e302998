package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tickos/host/config"
)

var (
	configPath string
	device     string
	baud       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tickos-host",
		Short: "tickos timing host tool",
		Long:  `Connects to a board running the tickos firmware and inspects its report stream.`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&device, "device", "", "Serial device path (overrides config)")
	rootCmd.PersistentFlags().IntVar(&baud, "baud", 0, "Baud rate (overrides config)")

	rootCmd.AddCommand(monitorCmd())
	rootCmd.AddCommand(driftCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the config file (if any) with command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if device != "" {
		cfg.Device = device
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	return cfg, nil
}
