package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tickos/host/monitor"
	"tickos/host/serial"
	"tickos/protocol"
)

func driftCmd() *cobra.Command {
	var seconds int

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Measure MCU clock drift and jitter against the host clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if seconds != 0 {
				cfg.SampleSeconds = seconds
			}

			port, err := serial.Open(&serial.Config{
				Device:      cfg.Device,
				Baud:        cfg.Baud,
				ReadTimeout: cfg.ReadTimeoutMS,
			})
			if err != nil {
				return err
			}
			defer port.Close()

			fmt.Printf("Sampling %s for %ds...\n", cfg.Device, cfg.SampleSeconds)

			var stats monitor.DriftStats
			reader := monitor.NewReader(port)
			deadline := time.Now().Add(time.Duration(cfg.SampleSeconds) * time.Second)
			for time.Now().Before(deadline) {
				frame, err := reader.Next()
				if err != nil {
					return fmt.Errorf("report stream ended: %w", err)
				}
				if frame.Type != protocol.MsgTimeReport {
					continue
				}
				report, err := protocol.DecodeTimeReport(frame)
				if err != nil {
					continue
				}
				stats.Add(time.Now(), report)
			}

			result, err := stats.Result()
			if err != nil {
				return err
			}
			return printDriftResult(result)
		},
	}

	cmd.Flags().IntVar(&seconds, "seconds", 0, "Sampling window in seconds (overrides config)")
	return cmd
}

func printDriftResult(result monitor.DriftResult) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Samples", "Host Span", "MCU Span", "Drift (ppm)", "Max Jitter (us)", "Mean Jitter (us)"})
	table.Append([]string{
		fmt.Sprintf("%d", result.Samples),
		result.HostSpan.String(),
		result.MCUSpan.String(),
		fmt.Sprintf("%+.1f", result.DriftPPM),
		fmt.Sprintf("%.1f", result.MaxJitterUS),
		fmt.Sprintf("%.1f", result.MeanJitterUS),
	})
	table.Render()
	return nil
}
