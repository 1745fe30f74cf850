package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, s Settings)
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, Default(), s)
			},
		},
		{
			name: "partial override",
			yaml: "exchange:\n  listen_addr: \"127.0.0.1:9000\"\n  timeout: 3s\n  compression: best\n",
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, "127.0.0.1:9000", s.Exchange.ListenAddr)
				assert.Equal(t, 3*time.Second, s.Exchange.Timeout)
				assert.Equal(t, CompressionBest, s.Exchange.Compression)
				assert.Equal(t, Default().Archive, s.Archive)
			},
		},
		{
			name: "archive layout",
			yaml: "archive:\n  data_shards: 10\n  parity_shards: 4\n",
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 10, s.Archive.DataShards)
				assert.Equal(t, 4, s.Archive.ParityShards)
			},
		},
		{
			name:    "unknown field",
			yaml:    "exchange:\n  listen: \"127.0.0.1:9000\"\n",
			wantErr: true,
		},
		{
			name:    "bad compression",
			yaml:    "exchange:\n  compression: zstd\n",
			wantErr: true,
		},
		{
			name:    "bad listen address",
			yaml:    "exchange:\n  listen_addr: \"no-port\"\n",
			wantErr: true,
		},
		{
			name:    "zero parity",
			yaml:    "archive:\n  parity_shards: 0\n",
			wantErr: true,
		},
		{
			name:    "too many data shards",
			yaml:    "archive:\n  data_shards: 200\n",
			wantErr: true,
		},
		{
			name:    "invalid log level",
			yaml:    "logger:\n  log_level: loud\n  log_type: console\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trsa.yaml")
	content := "logger:\n  log_level: debug\n  log_type: file\n  file_path: " + filepath.Join(t.TempDir(), "trsa.log") +
		"\n  max_size: 10\n  max_backups: 3\n  max_age: 28\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, s.Logger.LogLevel)
	assert.Equal(t, LogTypeFile, s.Logger.LogType)
	assert.Equal(t, 10, s.Logger.MaxSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoggerSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings LoggerSettings
		wantErr  bool
	}{
		{"console", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole}, false},
		{"file", LoggerSettings{LogLevel: LogLevelError, LogType: LogTypeFile, FilePath: "/tmp/x.log", MaxSize: 1, MaxBackups: 1, MaxAge: 1}, false},
		{"missing level", LoggerSettings{LogType: LogTypeConsole}, true},
		{"unknown type", LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"}, true},
		{"file without path", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, MaxSize: 1, MaxBackups: 1, MaxAge: 1}, true},
		{"file without rotation", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "/tmp/x.log"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
