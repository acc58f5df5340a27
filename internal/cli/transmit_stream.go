package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/acoustictx/acoustic-modem/internal/audiodevice"
	"github.com/acoustictx/acoustic-modem/internal/stream"
)

func newTransmitStreamCmd() *cobra.Command {
	var compress bool
	var name string

	cmd := &cobra.Command{
		Use:   "transmit-stream <payload-file>",
		Short: "Play a file as a live streaming session through a sound device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile()
			if err != nil {
				return err
			}

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if name == "" {
				name = filepath.Base(args[0])
			}

			player, err := audiodevice.OpenPlayer(float64(profile.SampleRate), 4*profile.SamplesPerSymbol())
			if err != nil {
				return err
			}
			defer player.Close()

			if err := stream.Send(player, stream.SendOptions{
				Profile:  profile,
				Name:     name,
				Compress: compress,
			}, payload); err != nil {
				return err
			}

			fmt.Printf("streamed %q (%d bytes)\n", name, len(payload))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&compress, "compress", "c", true, "compress the payload before framing")
	cmd.Flags().StringVar(&name, "name", "", "filename to announce in the stream SYN (default: base name of the input file)")
	return cmd
}
