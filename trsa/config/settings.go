package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Compression level names accepted by ExchangeSettings.Compression.
const (
	CompressionNone    = "none"
	CompressionFast    = "fast"
	CompressionDefault = "default"
	CompressionBest    = "best"
)

// ExchangeSettings configures the QUIC key exchange server and client.
type ExchangeSettings struct {
	ListenAddr  string        `yaml:"listen_addr" validate:"required"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	Compression string        `yaml:"compression" validate:"oneof=none fast default best"`
}

// ArchiveSettings configures the Reed-Solomon layout of ciphertext archives.
type ArchiveSettings struct {
	DataShards   int `yaml:"data_shards" validate:"min=1,max=128"`
	ParityShards int `yaml:"parity_shards" validate:"min=1,max=128"`
}

// Settings is the top-level configuration.
type Settings struct {
	Logger   LoggerSettings   `yaml:"logger"`
	Exchange ExchangeSettings `yaml:"exchange"`
	Archive  ArchiveSettings  `yaml:"archive"`
}

// Default returns settings usable without a config file.
func Default() Settings {
	return Settings{
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Exchange: ExchangeSettings{
			ListenAddr:  "[::1]:4270",
			Timeout:     10 * time.Second,
			Compression: CompressionDefault,
		},
		Archive: ArchiveSettings{
			DataShards:   8,
			ParityShards: 4,
		},
	}
}

// Validate checks every section.
func (s *Settings) Validate() error {
	if err := s.Logger.Validate(); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(s.Exchange); err != nil {
		return fmt.Errorf("validation failed for ExchangeSettings: %w", err)
	}
	if _, _, err := net.SplitHostPort(s.Exchange.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", s.Exchange.ListenAddr, err)
	}
	if err := v.Struct(s.Archive); err != nil {
		return fmt.Errorf("validation failed for ArchiveSettings: %w", err)
	}
	return nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses a YAML file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}
