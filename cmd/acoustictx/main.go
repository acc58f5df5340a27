// Command acoustictx modulates and demodulates byte payloads over an
// acoustic channel, either as one-shot .wav artifacts or as a live
// stream through a sound device.
package main

import "github.com/acoustictx/acoustic-modem/internal/cli"

func main() {
	cli.Execute()
}
