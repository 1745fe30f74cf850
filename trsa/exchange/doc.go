// Package exchange runs the trsa key exchange over a QUIC connection.
//
// The client opens one stream and sends KEY_REQUEST. The server answers with its PUBLIC_KEY,
// after which the client sends CIPHERTEXT or CIPHERTEXT_LZ4 frames. Every ciphertext is
// decrypted by the server and acknowledged with an ACK carrying the BLAKE2b-256 digest of the
// recovered plaintext, so the client can confirm the message arrived intact. CLOSE ends the
// exchange.
package exchange
