package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mimms/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), config)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("MIMMS_TRANSPORT_CHUNK_SIZE", "4096")
	t.Setenv("MIMMS_TRANSPORT_BANDWIDTH", "1000000")
	t.Setenv("MIMMS_FETCH_METHOD", "wget")
	t.Setenv("MIMMS_FETCH_TIMEOUT", "5s")
	t.Setenv("MIMMS_OUTPUT_DEFAULT_NAME", "stream.asf")
	t.Setenv("MIMMS_PROGRESS_INTERVAL", "1s")
	t.Setenv("MIMMS_LOGGING_FORMAT", "json")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4096, config.Transport.ChunkSize)
	assert.Equal(t, 1000000, config.Transport.Bandwidth)
	assert.Equal(t, domain.FetchMethodWget, config.Fetch.Method)
	assert.Equal(t, 5*time.Second, config.Fetch.Timeout)
	assert.Equal(t, "stream.asf", config.Output.DefaultName)
	assert.Equal(t, time.Second, config.Progress.Interval)
	assert.Equal(t, "json", config.Logging.Format)
}

func TestLoadConfig_ExpandsLogPath(t *testing.T) {
	t.Setenv("MIMMS_TEST_LOG_DIR", "/var/log/mimms")
	t.Setenv("MIMMS_LOGGING_OUTPUT_PATH", "$MIMMS_TEST_LOG_DIR/run.log")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/mimms/run.log", config.Logging.OutputPath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero chunk size", "MIMMS_TRANSPORT_CHUNK_SIZE", "0"},
		{"negative bandwidth", "MIMMS_TRANSPORT_BANDWIDTH", "-1"},
		{"unknown fetch method", "MIMMS_FETCH_METHOD", "curl"},
		{"zero progress interval", "MIMMS_PROGRESS_INTERVAL", "0s"},
		{"not a number", "MIMMS_TRANSPORT_CHUNK_SIZE", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfig)
			assert.Equal(t, domain.ExitFatal, domain.ExitCode(err))
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/logs/mimms.log", expandPath("~/logs/mimms.log"))
	assert.Equal(t, "/home/tester/x", expandPath("$HOME/x"))
	assert.Equal(t, "stderr", expandPath("stderr"))
}
