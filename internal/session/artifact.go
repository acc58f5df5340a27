// Package session implements the file-mode protocol of spec.md §4.7:
// one modulated .wav artifact per packet, named by the caller-chosen
// prefix, and the selective-retransmission flow driven by NACK
// artifacts. Grounded on the original dpareja/audioprotocol Python
// scripts (audio_protocol.py's send_file, audio_receiver.py's
// receive_file, audio_retransmit.py's retransmit_packets), re-expressed
// against internal/modem + internal/proto + internal/wavio.
package session

import "fmt"

// Artifact naming, per spec.md §6: all under a caller-chosen prefix.
func synPath(prefix string) string { return fmt.Sprintf("%s_syn.wav", prefix) }
func finPath(prefix string) string { return fmt.Sprintf("%s_fin.wav", prefix) }
func dataPath(prefix string, seq int) string {
	return fmt.Sprintf("%s_data_%04d.wav", prefix, seq)
}
func nackPath(prefix string, seq int) string {
	return fmt.Sprintf("%s_nack_%04d.wav", prefix, seq)
}
func retxPath(prefix string, seq int) string {
	return fmt.Sprintf("%s_retx_%04d.wav", prefix, seq)
}
