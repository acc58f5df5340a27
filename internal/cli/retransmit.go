package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acoustictx/acoustic-modem/internal/session"
)

func newRetransmitCmd() *cobra.Command {
	var dataPrefix, nackPrefix, retxPrefix string

	cmd := &cobra.Command{
		Use:   "retransmit",
		Short: "Scan for NACK artifacts and re-emit the matching DATA artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile()
			if err != nil {
				return err
			}

			result, err := session.Retransmit(session.RetransmitOptions{
				Profile:    profile,
				DataPrefix: resolveArtifactPath(dataPrefix),
				NackPrefix: resolveArtifactPath(nackPrefix),
				RetxPrefix: resolveArtifactPath(retxPrefix),
			})
			if err != nil {
				return err
			}

			fmt.Printf("retransmitted %d packet(s): %v\n", len(result.Retransmitted), result.Retransmitted)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPrefix, "data-prefix", "tx", "prefix of the original DATA artifacts")
	cmd.Flags().StringVar(&nackPrefix, "nack-prefix", "rx", "prefix of the NACK artifacts to scan")
	cmd.Flags().StringVar(&retxPrefix, "retx-prefix", "tx_retx", "prefix for re-emitted DATA artifacts")
	return cmd
}
