package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TheusHen/trsa/trsa/archive"
	"github.com/TheusHen/trsa/trsa/cipher"
	"github.com/TheusHen/trsa/trsa/keys"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// GenerateKeysCmd generates a key pair and persists it in the selected directory.
func (h *CommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("invalid out-dir flag: %w", err)
	}

	uniqueID := uuid.New()
	pub, priv := keys.NewGenerator(keys.WithLogger(h.logger)).GenerateKeyPair()

	privateKeyFilePath := filepath.Join(outDir, fmt.Sprintf("%s-private-key.json", uniqueID.String()))
	if err := keys.SavePrivateKey(priv, privateKeyFilePath); err != nil {
		return err
	}
	publicKeyFilePath := filepath.Join(outDir, fmt.Sprintf("%s-public-key.json", uniqueID.String()))
	if err := keys.SavePublicKey(pub, publicKeyFilePath); err != nil {
		return err
	}

	h.logger.Info(cmd.Context(), "generated key pair", "key_id", pub.ID().String(), "public_key", publicKeyFilePath, "private_key", privateKeyFilePath)
	fmt.Fprintln(cmd.OutOrStdout(), pub.ID().String())
	return nil
}

// EncryptCmd encrypts a file into an erasure-coded archive.
func (h *CommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	pub, err := keys.LoadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}
	plainText, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}
	ct, err := cipher.Encrypt(plainText, pub)
	if err != nil {
		return err
	}
	sealed, err := archive.Seal(ct, pub.ID(), h.settings.Archive.DataShards, h.settings.Archive.ParityShards)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, sealed, 0o600); err != nil {
		return err
	}

	h.logger.Info(cmd.Context(), "encrypted file", "path", outputFile, "key_id", pub.ID().Short(), "bytes", len(plainText))
	return nil
}

// DecryptCmd opens an archive, repairing damaged shards, and decrypts it.
func (h *CommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}

	priv, err := keys.LoadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}
	sealed, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}
	a, err := archive.Open(sealed)
	if err != nil {
		return err
	}
	if a.KeyID != priv.ID() {
		return fmt.Errorf("%s was encrypted for key %s, not %s", inputFile, a.KeyID.Short(), priv.ID().Short())
	}
	if a.Repaired > 0 {
		h.logger.Warn(cmd.Context(), "repaired damaged archive shards", "path", inputFile, "shards", a.Repaired)
	}
	plainText, err := cipher.Decrypt(a.Ciphertext, priv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, plainText, 0o600); err != nil {
		return err
	}

	h.logger.Info(cmd.Context(), "decrypted file", "path", outputFile, "bytes", len(plainText))
	return nil
}

func initKeyCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	var generateKeysCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().String("out-dir", ".", "Directory to store the key files")
	rootCmd.AddCommand(generateKeysCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file into an archive",
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().String("input-file", "", "Path to input file which needs to be encrypted")
	encryptCmd.Flags().String("output-file", "", "Path to encrypted output archive")
	encryptCmd.Flags().String("public-key", "", "Path to public key file")
	for _, name := range []string{"input-file", "output-file", "public-key"} {
		if err := encryptCmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt an archive",
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().String("input-file", "", "Path to encrypted archive")
	decryptCmd.Flags().String("output-file", "", "Path to decrypted output file")
	decryptCmd.Flags().String("private-key", "", "Path to private key file")
	for _, name := range []string{"input-file", "output-file", "private-key"} {
		if err := decryptCmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}
	rootCmd.AddCommand(decryptCmd)
	return nil
}
