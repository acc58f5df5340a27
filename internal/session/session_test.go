package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

func withTempDir(t *testing.T) func(rel string) string {
	dir := t.TempDir()
	return func(rel string) string { return filepath.Join(dir, rel) }
}

func TestSendReceiveRoundTripFileMode(t *testing.T) {
	path := withTempDir(t)

	for _, p := range []modem.Profile{modem.Audible, modem.Ultrasonic} {
		p := p
		for _, compress := range []bool{true, false} {
			t.Run(fmt.Sprintf("%s_compress_%v", p.Name, compress), func(t *testing.T) {
				payload := []byte("the quick brown fox jumps over the lazy dog, repeatedly, to exceed one chunk")
				prefix := path(fmt.Sprintf("%s_%v", p.Name, compress))

				sendResult, err := Send(SendOptions{Profile: p, Prefix: prefix, Compress: compress}, payload)
				require.NoError(t, err)
				assert.Greater(t, sendResult.DataPackets, 0)

				recvResult, err := Receive(ReceiveOptions{Profile: p, Prefix: prefix})
				require.NoError(t, err)
				assert.Equal(t, payload, recvResult.Payload)
			})
		}
	}
}

func TestSendReceiveRoundTripEmptyPayload(t *testing.T) {
	path := withTempDir(t)
	prefix := path("empty")

	sendResult, err := Send(SendOptions{Profile: modem.Audible, Prefix: prefix, Compress: false}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sendResult.DataPackets)

	recvResult, err := Receive(ReceiveOptions{Profile: modem.Audible, Prefix: prefix})
	require.NoError(t, err)
	assert.Empty(t, recvResult.Payload)
}

func TestReceiveReportsMissingAndEmitsNACKs(t *testing.T) {
	path := withTempDir(t)
	prefix := path("tx")
	nackPrefix := path("rx")

	payload := make([]byte, modem.Audible.PayloadChunkSize*3)
	for i := range payload {
		payload[i] = byte(i)
	}

	_, err := Send(SendOptions{Profile: modem.Audible, Prefix: prefix, Compress: false}, payload)
	require.NoError(t, err)

	require.NoError(t, os.Remove(dataPath(prefix, 1)))

	_, err = Receive(ReceiveOptions{
		Profile:           modem.Audible,
		Prefix:            prefix,
		RequestRetransmit: true,
		NackPrefix:        nackPrefix,
	})
	require.Error(t, err)

	var incomplete *modemerr.IncompleteError
	require.True(t, errors.As(err, &incomplete))
	// Probing stops at the first missing DATA artifact, so every seq from
	// the gap up to FIN's count is reported missing.
	assert.Equal(t, []int{1, 2}, incomplete.Missing)
	assert.ErrorIs(t, err, modemerr.ErrIncompleteNeedsRetx)

	assert.FileExists(t, nackPath(nackPrefix, 1))
}

// Retransmission never re-modulates: the sender keeps its original DATA
// artifacts (txPrefix) while the receiver only sees a lossy copy
// (rxCopyPrefix) that is missing packet 0. The receiver's probe stops at
// that miss, so it NACKs 0 and 1, and Retransmit must byte-copy the
// sender's original artifact for each NACKed sequence number.
func TestRetransmitCopiesOriginalDataArtifactBytes(t *testing.T) {
	path := withTempDir(t)
	txPrefix := path("tx")
	rxCopyPrefix := path("rxcopy")
	nackPrefix := path("rx")
	retxPrefix := path("tx_retx")

	payload := make([]byte, modem.Audible.PayloadChunkSize*2)
	_, err := Send(SendOptions{Profile: modem.Audible, Prefix: txPrefix, Compress: false}, payload)
	require.NoError(t, err)

	copyArtifact(t, synPath(txPrefix), synPath(rxCopyPrefix))
	copyArtifact(t, finPath(txPrefix), finPath(rxCopyPrefix))
	copyArtifact(t, dataPath(txPrefix, 1), dataPath(rxCopyPrefix, 1))
	// dataPath(rxCopyPrefix, 0) deliberately left absent: the lost packet.

	_, err = Receive(ReceiveOptions{
		Profile:           modem.Audible,
		Prefix:            rxCopyPrefix,
		RequestRetransmit: true,
		NackPrefix:        nackPrefix,
	})
	require.Error(t, err)
	var incomplete *modemerr.IncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []int{0, 1}, incomplete.Missing)

	result, err := Retransmit(RetransmitOptions{
		Profile:    modem.Audible,
		DataPrefix: txPrefix,
		NackPrefix: nackPrefix,
		RetxPrefix: retxPrefix,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, result.Retransmitted)

	original, err := os.ReadFile(dataPath(txPrefix, 0))
	require.NoError(t, err)
	retxed, err := os.ReadFile(retxPath(retxPrefix, 0))
	require.NoError(t, err)
	assert.Equal(t, original, retxed)
}

// A 256th DATA chunk would make FIN's one-byte seq (which also carries
// the total DATA count) wrap from 256 to 0, so Send must reject it
// before writing a single artifact. 255 chunks is the real ceiling.
func TestSendRejectsSessionsNeedingMoreThan255DataPackets(t *testing.T) {
	path := withTempDir(t)
	tinyChunks := modem.Audible
	tinyChunks.PayloadChunkSize = 1

	t.Run("255 chunks is the maximum that fits", func(t *testing.T) {
		prefix := path("at-limit")
		payload := make([]byte, 255)
		result, err := Send(SendOptions{Profile: tinyChunks, Prefix: prefix}, payload)
		require.NoError(t, err)
		assert.Equal(t, 255, result.DataPackets)
	})

	t.Run("256 chunks is rejected before any artifact is written", func(t *testing.T) {
		prefix := path("over-limit")
		payload := make([]byte, 256)
		_, err := Send(SendOptions{Profile: tinyChunks, Prefix: prefix}, payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, modemerr.ErrUsage)
		assert.NoFileExists(t, synPath(prefix))
	})
}

func copyArtifact(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}
