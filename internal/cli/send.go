package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acoustictx/acoustic-modem/internal/session"
)

func newSendCmd() *cobra.Command {
	var compress bool
	var prefix string

	cmd := &cobra.Command{
		Use:   "send <payload-file>",
		Short: "Split a file into SYN/DATA/FIN .wav artifacts",
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

			if prefix == "" {
				prefix = "tx"
			}
			prefix = resolveArtifactPath(prefix)

			result, err := session.Send(session.SendOptions{
				Profile:  profile,
				Prefix:   prefix,
				Compress: compress,
			}, payload)
			if err != nil {
				return err
			}

			fmt.Printf("wrote %d DATA artifacts under prefix %q\n", result.DataPackets, prefix)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&compress, "compress", "c", true, "compress the payload before framing")
	cmd.Flags().StringVar(&prefix, "prefix", "tx", "artifact name prefix")
	return cmd
}
