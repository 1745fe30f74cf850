package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/TheusHen/trsa/trsa/exchange"
	"github.com/TheusHen/trsa/trsa/keys"
	"github.com/TheusHen/trsa/trsa/transport/quic"
	"github.com/TheusHen/trsa/trsa/wire"
	"github.com/spf13/cobra"
)

// serverKeys loads the pair named by the key flags, or generates a fresh one when both are empty.
func (h *CommandHandler) serverKeys(cmd *cobra.Command) (exchange.KeyPair, error) {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return exchange.KeyPair{}, fmt.Errorf("invalid public-key flag: %w", err)
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return exchange.KeyPair{}, fmt.Errorf("invalid private-key flag: %w", err)
	}

	if publicKeyPath == "" && privateKeyPath == "" {
		pub, priv := keys.NewGenerator(keys.WithLogger(h.logger)).GenerateKeyPair()
		return exchange.KeyPair{Public: pub, Private: priv}, nil
	}
	if publicKeyPath == "" || privateKeyPath == "" {
		return exchange.KeyPair{}, fmt.Errorf("--public-key and --private-key must be given together")
	}
	pub, err := keys.LoadPublicKey(publicKeyPath)
	if err != nil {
		return exchange.KeyPair{}, err
	}
	priv, err := keys.LoadPrivateKey(privateKeyPath)
	if err != nil {
		return exchange.KeyPair{}, err
	}
	if pub.ID() != priv.ID() {
		return exchange.KeyPair{}, fmt.Errorf("%w: public and private key do not belong together", keys.ErrInvalidKey)
	}
	return exchange.KeyPair{Public: pub, Private: priv}, nil
}

// ServeCmd publishes a public key over QUIC and prints every message it receives.
func (h *CommandHandler) ServeCmd(cmd *cobra.Command, _ []string) error {
	listen, err := cmd.Flags().GetString("listen")
	if err != nil {
		return fmt.Errorf("invalid listen flag: %w", err)
	}
	if listen == "" {
		listen = h.settings.Exchange.ListenAddr
	}
	kp, err := h.serverKeys(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ln, err := quic.Listen(listen, h.settings.Exchange.Timeout)
	if err != nil {
		return err
	}
	context.AfterFunc(ctx, func() { _ = ln.Close() })

	var outMu sync.Mutex
	srv := &exchange.Server{
		Keys:   kp,
		Logger: h.logger,
		Handler: func(_ context.Context, msg []byte) error {
			outMu.Lock()
			defer outMu.Unlock()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", msg)
			return err
		},
	}
	h.logger.Info(ctx, "serving", "addr", ln.AddrString(), "key_id", kp.Public.ID().String())

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(ctx, conn); err != nil {
				h.logger.Warn(ctx, "exchange failed", "remote", conn.RemoteAddr().String(), "error", err)
			}
			_ = conn.CloseWithError(0, "")
		}()
	}
}

// SendCmd sends one encrypted message to a serving peer.
func (h *CommandHandler) SendCmd(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("invalid addr flag: %w", err)
	}
	if addr == "" {
		addr = h.settings.Exchange.ListenAddr
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("invalid message flag: %w", err)
	}
	keyID, err := cmd.Flags().GetString("key-id")
	if err != nil {
		return fmt.Errorf("invalid key-id flag: %w", err)
	}
	level, err := wire.ParseCompressionLevel(h.settings.Exchange.Compression)
	if err != nil {
		return err
	}

	opts := []exchange.ClientOption{
		exchange.WithCompression(level),
		exchange.WithLogger(h.logger),
	}
	if keyID != "" {
		id, err := keys.ParseKeyID(keyID)
		if err != nil {
			return err
		}
		opts = append(opts, exchange.WithExpectedKey(id))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), h.settings.Exchange.Timeout)
	defer cancel()

	conn, err := quic.Dial(ctx, addr, h.settings.Exchange.Timeout)
	if err != nil {
		return err
	}
	defer conn.CloseWithError(0, "")

	client, err := exchange.Connect(ctx, conn, opts...)
	if err != nil {
		return err
	}
	if err := client.Send([]byte(message)); err != nil {
		_ = client.Close()
		return err
	}
	if err := client.Close(); err != nil {
		return err
	}

	h.logger.Info(ctx, "message acknowledged", "addr", addr, "key_id", client.PublicKey().ID().Short(), "bytes", len(message))
	return nil
}

func initExchangeCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Publish a public key over QUIC and print received messages",
		RunE:  handler.ServeCmd,
	}
	serveCmd.Flags().String("listen", "", "Listen address (defaults to exchange.listen_addr)")
	serveCmd.Flags().String("public-key", "", "Path to public key file (a fresh pair is generated when omitted)")
	serveCmd.Flags().String("private-key", "", "Path to private key file")
	rootCmd.AddCommand(serveCmd)

	var sendCmd = &cobra.Command{
		Use:   "send",
		Short: "Encrypt a message under a peer's published key and send it",
		RunE:  handler.SendCmd,
	}
	sendCmd.Flags().String("addr", "", "Peer address (defaults to exchange.listen_addr)")
	sendCmd.Flags().String("message", "", "Message to send")
	sendCmd.Flags().String("key-id", "", "Expected key id of the peer, hex")
	if err := sendCmd.MarkFlagRequired("message"); err != nil {
		return err
	}
	rootCmd.AddCommand(sendCmd)
	return nil
}
