package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := Frame{Type: MessageTypeAck, Payload: []byte("ok")}
	if err := WriteFrame(&buf, in); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	out, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if out.Type != in.Type {
		t.Fatalf("type mismatch")
	}
	if !bytes.Equal(out.Payload, in.Payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestConsecutiveFrames(t *testing.T) {
	var buf bytes.Buffer
	frames := []Frame{
		{Type: MessageTypePublicKey, Payload: []byte(`{"modulus":3233,"exponent":257}`)},
		{Type: MessageTypeCiphertext, Payload: MarshalCiphertext([]int64{1, 2, 3})},
		{Type: MessageTypeClose},
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	for i, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame %d: %v", i, err)
		}
		if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
			t.Fatalf("frame %d mismatch", i)
		}
	}
	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Fatalf("expected io.EOF after last frame, got %v", err)
	}
}

func TestFrameErrors(t *testing.T) {
	if err := WriteFrame(io.Discard, Frame{}); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if err := WriteFrame(io.Discard, Frame{Type: MessageTypeAck, Payload: make([]byte, MaxFramePayload+1)}); err != ErrFrameTooLarge {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}

	oversized := []byte{byte(MessageTypeAck), 0xff, 0xff, 0xff, 0xff}
	if _, err := ReadFrame(bytes.NewReader(oversized)); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	zeroType := []byte{0, 0, 0, 0, 0}
	if _, err := ReadFrame(bytes.NewReader(zeroType)); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	truncated := []byte{byte(MessageTypeAck), 0, 0, 0, 4, 'o'}
	if _, err := ReadFrame(bytes.NewReader(truncated)); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestMessageTypeString(t *testing.T) {
	if MessageTypeCiphertextLZ4.String() != "CIPHERTEXT_LZ4" {
		t.Fatalf("unexpected name %q", MessageTypeCiphertextLZ4.String())
	}
	if MessageType(99).String() != "UNKNOWN" {
		t.Fatalf("unexpected name for unknown type")
	}
}
