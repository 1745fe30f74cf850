// Package main is the entry point for the trsa command-line tool.
// It registers the key, file and exchange sub-commands and executes the CLI.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/TheusHen/trsa/cmd/trsa/internal/commands"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "trsa",
		Short: "Textbook RSA over a fixed prime table",
		Long: `trsa generates small RSA key pairs from a built-in table of 31-bit primes,
encrypts files byte by byte into erasure-coded archives and exchanges encrypted
messages with a peer over QUIC.

This is a teaching cipher. Do not use it to protect real data.`,
		SilenceUsage: true,
	}

	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
