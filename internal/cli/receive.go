package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/session"
)

func newReceiveCmd() *cobra.Command {
	var prefix, nackPrefix, outFile string
	var retransmit bool

	cmd := &cobra.Command{
		Use:   "receive <output-file>",
		Short: "Demodulate SYN/DATA/FIN .wav artifacts back into a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile()
			if err != nil {
				return err
			}
			outFile = resolveArtifactPath(args[0])
			prefix = resolveArtifactPath(prefix)
			nackPrefix = resolveArtifactPath(nackPrefix)

			result, err := session.Receive(session.ReceiveOptions{
				Profile:           profile,
				Prefix:            prefix,
				RequestRetransmit: retransmit,
				NackPrefix:        nackPrefix,
			})

			var incomplete *modemerr.IncompleteError
			if errors.As(err, &incomplete) {
				fmt.Printf("incomplete: missing sequence numbers %v\n", incomplete.Missing)
				return err
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(outFile, result.Payload, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(result.Payload), outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "tx", "artifact name prefix to read from")
	cmd.Flags().StringVar(&nackPrefix, "nack-prefix", "rx", "artifact name prefix for emitted NACKs")
	cmd.Flags().BoolVar(&retransmit, "retransmit", true, "emit NACK artifacts for missing packets")
	return cmd
}
