package exchange

import (
	"bytes"
	"context"
	"io"

	"github.com/TheusHen/trsa/trsa/cipher"
	"github.com/TheusHen/trsa/trsa/keys"
	"github.com/TheusHen/trsa/trsa/logging"
	"github.com/TheusHen/trsa/trsa/wire"
	q "github.com/quic-go/quic-go"
)

// Client sends messages encrypted under the server's published key.
type Client struct {
	stream io.ReadWriteCloser
	key    keys.PublicKey
	level  wire.CompressionLevel
	expect *keys.KeyID
	logger logging.Logger
}

type ClientOption func(*Client)

// WithCompression sets the LZ4 level used for ciphertext frames.
func WithCompression(level wire.CompressionLevel) ClientOption {
	return func(c *Client) { c.level = level }
}

// WithExpectedKey makes Connect fail unless the server publishes the key with this id.
func WithExpectedKey(id keys.KeyID) ClientOption {
	return func(c *Client) { c.expect = &id }
}

func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// Connect opens a stream on conn and fetches the server's public key.
func Connect(ctx context.Context, conn q.Connection, opts ...ClientOption) (*Client, error) {
	st, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return nil, err
	}
	c, err := handshake(ctx, st, opts...)
	if err != nil {
		st.CancelRead(0)
		_ = st.Close()
		return nil, err
	}
	return c, nil
}

func handshake(ctx context.Context, rw io.ReadWriteCloser, opts ...ClientOption) (*Client, error) {
	c := &Client{
		stream: rw,
		level:  wire.CompressionDefault,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := wire.WriteFrame(rw, wire.Frame{Type: wire.MessageTypeKeyRequest}); err != nil {
		return nil, err
	}
	frame, err := wire.ReadFrame(rw)
	if err != nil {
		return nil, err
	}
	if frame.Type != wire.MessageTypePublicKey {
		return nil, unexpected(frame.Type, wire.MessageTypePublicKey)
	}
	key, err := wire.DecodePublicKey(frame.Payload)
	if err != nil {
		return nil, err
	}
	if c.expect != nil && key.ID() != *c.expect {
		return nil, ErrUnexpectedKey
	}
	c.key = key
	c.logger.Debug(ctx, "server key received", "key_id", key.ID().Short(), "modulus", key.Modulus)
	return c, nil
}

// PublicKey returns the key the server published.
func (c *Client) PublicKey() keys.PublicKey { return c.key }

// Send encrypts msg, sends it and waits for the server's acknowledgement.
func (c *Client) Send(msg []byte) error {
	ct, err := cipher.Encrypt(msg, c.key)
	if err != nil {
		return err
	}
	frame, err := wire.CiphertextFrame(ct, c.level)
	if err != nil {
		return err
	}
	if err := wire.WriteFrame(c.stream, frame); err != nil {
		return err
	}

	ack, err := wire.ReadFrame(c.stream)
	if err != nil {
		return err
	}
	if ack.Type != wire.MessageTypeAck {
		return unexpected(ack.Type, wire.MessageTypeAck)
	}
	sum := digest(msg)
	if !bytes.Equal(ack.Payload, sum[:]) {
		return ErrDigestMismatch
	}
	return nil
}

// Close ends the exchange and closes the send side of the stream.
func (c *Client) Close() error {
	if err := wire.WriteFrame(c.stream, wire.Frame{Type: wire.MessageTypeClose}); err != nil {
		_ = c.stream.Close()
		return err
	}
	return c.stream.Close()
}
