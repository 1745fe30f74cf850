// Package wire defines the framing used to move trsa keys and ciphertexts between peers.
//
// A frame is a 1-byte message type, a 4-byte big-endian payload length and the payload.
// Ciphertexts travel as a 4-byte count followed by one 8-byte big-endian value per byte of
// plaintext; such payloads are mostly zero bytes and shrink well under LZ4.
package wire
