package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/acoustictx/acoustic-modem/internal/audiodevice"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/stream"
)

func newListenCmd() *cobra.Command {
	var watchdogSeconds int

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Continuously capture audio and decode streaming sessions as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile()
			if err != nil {
				return err
			}

			cap, err := audiodevice.OpenCapturer(float64(profile.SampleRate), 4*profile.SamplesPerSymbol())
			if err != nil {
				return err
			}

			receiver := stream.NewReceiver(profile, cap, func(d stream.Delivered) {
				name := d.Name
				if name == "" {
					name = "received.bin"
				}
				out := resolveArtifactPath(name)
				if err := os.WriteFile(out, d.Payload, 0o644); err != nil {
					Logger.Error("failed writing delivered stream payload", "error", err)
					return
				}
				fmt.Printf("delivered %q (%d bytes) -> %s\n", d.Name, len(d.Payload), out)
			})
			if watchdogSeconds > 0 {
				receiver.SetWatchdog(time.Duration(watchdogSeconds) * time.Second)
			}

			stop := make(chan struct{})
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			go func() {
				<-sigCh
				close(stop)
			}()

			err = receiver.Run(stop)
			if errors.Is(err, modemerr.ErrCancelled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&watchdogSeconds, "watchdog-seconds", 0, "abort a stalled session after this many idle seconds (0 disables)")
	return cmd
}
