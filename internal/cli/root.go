// Package cli wires the Cobra command surface for the acoustictx
// binary: send, receive, retransmit, and listen/transmit-stream.
// Mirrors the global-Options + PersistentPreRun + slog setup of this
// codebase's cmd/root.go lineage (DiskMethod-CS2VoiceData).
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

// Options holds global configuration shared by every subcommand.
type Options struct {
	Verbose     bool
	ProfileName string
	OutputDir   string
}

// Opts is the global options instance used by all commands.
var Opts Options

// Logger is the default logger, installed by PersistentPreRun.
var Logger *slog.Logger

// resolveArtifactPath joins a caller-chosen artifact prefix or output
// file name with Opts.OutputDir, when set. Absolute names are left
// untouched.
func resolveArtifactPath(name string) string {
	if Opts.OutputDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(Opts.OutputDir, name)
}

func resolveProfile() (modem.Profile, error) {
	p, ok := modem.ByName(Opts.ProfileName)
	if !ok {
		return modem.Profile{}, fmt.Errorf("%w: unknown profile %q (want audible or ultrasonic)", modemerr.ErrUsage, Opts.ProfileName)
	}
	return p, nil
}

var rootCmd = &cobra.Command{
	Use:   "acoustictx",
	Short: "Transport byte payloads over an acoustic channel",
	Long: `acoustictx modulates digital data onto audible or ultrasonic
tones, either as .wav artifacts for one packet at a time or as a live
stream through a sound device, for air-gapped data exchange.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if Opts.Verbose {
			level = slog.LevelDebug
		}
		Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(Logger)
	},
}

// Execute runs the root command, translating the error kind into the
// exit codes of spec.md §6: 0 success, 1 usage, 2 handshake/decode
// failure, 3 incomplete-needs-retransmission.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, modemerr.ErrIncompleteNeedsRetx):
		os.Exit(3)
	case errors.Is(err, modemerr.ErrFailedHandshake),
		errors.Is(err, modemerr.ErrMalformedFrame),
		errors.Is(err, modemerr.ErrUnknownType),
		errors.Is(err, modemerr.ErrPayloadCorrupt):
		os.Exit(2)
	case errors.Is(err, modemerr.ErrUsage):
		os.Exit(1)
	default:
		slog.Error("acoustictx failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&Opts.Verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&Opts.ProfileName, "profile", "p", "audible", "modulation profile: audible or ultrasonic")
	rootCmd.PersistentFlags().StringVarP(&Opts.OutputDir, "output-dir", "o", "", "directory for generated artifacts (default: current directory)")

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newReceiveCmd())
	rootCmd.AddCommand(newRetransmitCmd())
	rootCmd.AddCommand(newListenCmd())
	rootCmd.AddCommand(newTransmitStreamCmd())
}
