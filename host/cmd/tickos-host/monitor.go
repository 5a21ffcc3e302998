package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tickos/host/monitor"
	"tickos/host/serial"
	"tickos/protocol"
)

func monitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Print the firmware report stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
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

			fmt.Printf("Monitoring %s at %d baud...\n", cfg.Device, cfg.Baud)

			reader := monitor.NewReader(port)
			for {
				frame, err := reader.Next()
				if err != nil {
					return fmt.Errorf("report stream ended: %w", err)
				}

				switch frame.Type {
				case protocol.MsgTimeReport:
					report, err := protocol.DecodeTimeReport(frame)
					if err != nil {
						continue
					}
					fmt.Printf("time    ms=%-10d us=%d\n", report.UptimeMS, report.UptimeUS)

				case protocol.MsgOneshotFired:
					fired, err := protocol.DecodeOneshotFired(frame)
					if err != nil {
						continue
					}
					fmt.Printf("oneshot handle=%d fired at %dus\n", fired.Handle, fired.AtUS)

				case protocol.MsgDebug:
					if text, err := protocol.DecodeDebug(frame); err == nil {
						fmt.Printf("debug   %s\n", text)
					}

				default:
					fmt.Printf("unknown frame type 0x%02X\n", frame.Type)
				}
			}
		},
	}
}
