package quic

import (
	"context"
	"io"
	"testing"
	"time"
)

func TestListenDialEcho(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ln, err := Listen("[::1]:0", 0)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	errCh := make(chan error, 1)
	go func() {
		conn, err := ln.Accept(ctx)
		if err != nil {
			errCh <- err
			return
		}
		st, err := conn.AcceptStream(ctx)
		if err != nil {
			errCh <- err
			return
		}
		buf := make([]byte, 4)
		if _, err := io.ReadFull(st, buf); err != nil {
			errCh <- err
			return
		}
		_, err = st.Write(buf)
		errCh <- err
	}()

	conn, err := Dial(ctx, ln.AddrString(), time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.CloseWithError(0, "")

	if got := conn.ConnectionState().TLS.NegotiatedProtocol; got != ALPN {
		t.Fatalf("negotiated %q, want %q", got, ALPN)
	}

	st, err := conn.OpenStreamSync(ctx)
	if err != nil {
		t.Fatalf("OpenStreamSync: %v", err)
	}
	if _, err := st.Write([]byte("trsa")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(st, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(buf) != "trsa" {
		t.Fatalf("echo %q", buf)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("server: %v", err)
	}
}
