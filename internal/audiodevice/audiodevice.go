// Package audiodevice is the other external collaborator the core
// modem never imports directly: the concrete capture/playback binding.
// internal/stream depends only on the Capturer/Player interfaces below,
// so the streaming session stays a pure function of whatever byte
// stream feeds it — a real sound card here, a test fixture in
// internal/stream's tests.
package audiodevice

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

// Capturer yields successive blocks of mono int16 PCM samples read from
// a microphone or other input source. ReadBlock blocks until exactly
// len(buf) samples are available, matching the streaming session's
// fixed-size polling reads.
type Capturer interface {
	ReadBlock(buf []int16) error
	Close() error
}

// Player accepts successive blocks of mono int16 PCM samples for
// playback.
type Player interface {
	WriteBlock(buf []int16) error
	Close() error
}

// PortaudioCapturer is a Capturer backed by the default input device.
type PortaudioCapturer struct {
	stream *portaudio.Stream
	in     []int16
}

// OpenCapturer opens the default input device at sampleRate, reading in
// blocks of framesPerBuffer samples.
func OpenCapturer(sampleRate float64, framesPerBuffer int) (*PortaudioCapturer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initializing portaudio: %v", modemerr.ErrDeviceUnavailable, err)
	}

	in := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, framesPerBuffer, in)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: opening input stream: %v", modemerr.ErrDeviceUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: starting input stream: %v", modemerr.ErrDeviceUnavailable, err)
	}

	return &PortaudioCapturer{stream: stream, in: in}, nil
}

// ReadBlock blocks the cooperative streaming loop's single suspension
// point for capture: waiting on the device for len(buf) fresh samples.
func (c *PortaudioCapturer) ReadBlock(buf []int16) error {
	if err := c.stream.Read(); err != nil {
		return fmt.Errorf("%w: reading from capture device: %v", modemerr.ErrDeviceUnavailable, err)
	}
	copy(buf, c.in)
	return nil
}

// Close stops and releases the capture device.
func (c *PortaudioCapturer) Close() error {
	defer portaudio.Terminate()
	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("%w: stopping capture device: %v", modemerr.ErrDeviceUnavailable, err)
	}
	return c.stream.Close()
}

// PortaudioPlayer is a Player backed by the default output device.
type PortaudioPlayer struct {
	stream *portaudio.Stream
	out    []int16
}

// OpenPlayer opens the default output device at sampleRate.
func OpenPlayer(sampleRate float64, framesPerBuffer int) (*PortaudioPlayer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initializing portaudio: %v", modemerr.ErrDeviceUnavailable, err)
	}

	out := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuffer, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: opening output stream: %v", modemerr.ErrDeviceUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: starting output stream: %v", modemerr.ErrDeviceUnavailable, err)
	}

	return &PortaudioPlayer{stream: stream, out: out}, nil
}

// WriteBlock blocks the cooperative streaming loop's suspension point
// for playback: buf is almost always longer than the device's fixed
// framesPerBuffer (callers hand over a whole modulated frame at once),
// so it is written out in framesPerBuffer-sized chunks, one
// stream.Write per chunk, zero-padding only the final partial chunk.
func (p *PortaudioPlayer) WriteBlock(buf []int16) error {
	for len(buf) > 0 {
		n := copy(p.out, buf)
		for ; n < len(p.out); n++ {
			p.out[n] = 0
		}
		if err := p.stream.Write(); err != nil {
			return fmt.Errorf("%w: writing to playback device: %v", modemerr.ErrDeviceUnavailable, err)
		}
		if len(buf) < len(p.out) {
			break
		}
		buf = buf[len(p.out):]
	}
	return nil
}

// Close flushes and releases the playback device.
func (p *PortaudioPlayer) Close() error {
	defer portaudio.Terminate()
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("%w: stopping playback device: %v", modemerr.ErrDeviceUnavailable, err)
	}
	return p.stream.Close()
}
