package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/TheusHen/trsa/trsa/cipher"
	"github.com/TheusHen/trsa/trsa/logging"
	"github.com/TheusHen/trsa/trsa/wire"
	q "github.com/quic-go/quic-go"
)

// Handler receives every decrypted message.
type Handler func(ctx context.Context, msg []byte) error

// Server answers one client per connection.
type Server struct {
	Keys    KeyPair
	Logger  logging.Logger
	Handler Handler
}

func (s *Server) logger() logging.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

// Serve accepts the client's stream on conn and runs the exchange until the client sends
// CLOSE or the stream ends. Cancelling ctx closes conn.
func (s *Server) Serve(ctx context.Context, conn q.Connection) error {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.CloseWithError(0, "server shutting down")
	})
	defer stop()

	st, err := conn.AcceptStream(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	s.logger().Info(ctx, "client connected", "remote", conn.RemoteAddr().String())
	return s.serveStream(ctx, st)
}

func (s *Server) serveStream(ctx context.Context, rw io.ReadWriter) error {
	if err := s.Keys.Public.Validate(); err != nil {
		return err
	}
	log := s.logger().With("key_id", s.Keys.Public.ID().Short())

	frame, err := wire.ReadFrame(rw)
	if err != nil {
		return err
	}
	if frame.Type != wire.MessageTypeKeyRequest {
		return unexpected(frame.Type, wire.MessageTypeKeyRequest)
	}
	payload, err := wire.EncodePublicKey(s.Keys.Public)
	if err != nil {
		return err
	}
	if err := wire.WriteFrame(rw, wire.Frame{Type: wire.MessageTypePublicKey, Payload: payload}); err != nil {
		return err
	}

	for n := 0; ; n++ {
		frame, err := wire.ReadFrame(rw)
		if errors.Is(err, io.EOF) {
			log.Debug(ctx, "stream ended", "messages", n)
			return nil
		}
		if err != nil {
			return err
		}

		switch frame.Type {
		case wire.MessageTypeClose:
			log.Info(ctx, "client closed exchange", "messages", n)
			return nil
		case wire.MessageTypeCiphertext, wire.MessageTypeCiphertextLZ4:
		default:
			return unexpected(frame.Type, wire.MessageTypeCiphertext)
		}

		ct, err := wire.ParseCiphertextFrame(frame)
		if err != nil {
			return err
		}
		msg, err := cipher.Decrypt(ct, s.Keys.Private)
		if err != nil {
			return err
		}
		log.Debug(ctx, "message received", "frame", frame.Type.String(), "wire_bytes", len(frame.Payload), "bytes", len(msg))

		if s.Handler != nil {
			if err := s.Handler(ctx, msg); err != nil {
				return fmt.Errorf("exchange: handler: %w", err)
			}
		}
		sum := digest(msg)
		if err := wire.WriteFrame(rw, wire.Frame{Type: wire.MessageTypeAck, Payload: sum[:]}); err != nil {
			return err
		}
	}
}
