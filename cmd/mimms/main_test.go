package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mimms/internal/domain"
	"github.com/yourusername/mimms/pkg/libmms"
)

type memConn struct {
	data *strings.Reader
	size uint64
}

func (c *memConn) Read(p []byte) (int, error) { return c.data.Read(p) }
func (c *memConn) Length() uint64             { return c.size }
func (c *memConn) Position() uint64           { return c.size - uint64(c.data.Len()) }
func (c *memConn) Close() error               { return nil }

type memLibrary struct {
	stream string
	err    error
}

func (l *memLibrary) ConnectMMS(url string, bandwidth int) (libmms.Conn, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &memConn{data: strings.NewReader(l.stream), size: uint64(len(l.stream))}, nil
}

func (l *memLibrary) ConnectMMSH(url string, bandwidth int) (libmms.Conn, error) {
	return l.ConnectMMS(url, bandwidth)
}

func execute(lib libmms.Library, fs afero.Fs, args ...string) (stdout, stderr string, err error) {
	return executeContext(context.Background(), strings.NewReader(""), lib, fs, args...)
}

func executeContext(ctx context.Context, stdin io.Reader, lib libmms.Library, fs afero.Fs, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	if args == nil {
		args = []string{}
	}
	cmd := newRootCommand(lib, fs)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"-t", "x", "-h"}, {"mms://host/a", "-h"}} {
		stdout, stderr, err := execute(&memLibrary{}, afero.NewMemMapFs(), args...)
		require.NoError(t, err, "%v", args)
		assert.Equal(t, domain.ExitOK, domain.ExitCode(err))
		assert.True(t, strings.HasPrefix(stdout, "mimms "+domain.Version), "%v", args)
		assert.Contains(t, stdout, "Usage: mimms [options] <url> [output]")
		assert.Empty(t, stderr)
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		diagnostic string
	}{
		{"no url", nil, "url must be specified"},
		{"mmsu", []string{"mmsu://host/a"}, "mmsu:// URL scheme not supported"},
		{"ftp", []string{"ftp://host/a"}, "ftp://host/a"},
		{"too many", []string{"mms://host/a", "out", "extra"}, "too many arguments"},
		{"bad time", []string{"-t", "soon", "mms://host/a"}, "invalid argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(&memLibrary{}, afero.NewMemMapFs(), tt.args...)
			require.Error(t, err)
			assert.Equal(t, domain.ExitUsage, domain.ExitCode(err))
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.diagnostic)
			assert.Contains(t, stderr, "Usage: mimms")
		})
	}
}

func TestRecordsStream(t *testing.T) {
	fs := afero.NewMemMapFs()
	lib := &memLibrary{stream: strings.Repeat("asf", 1000)}

	stdout, _, err := execute(lib, fs, "-c", "mms://media.example.com/live/news.wmv")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "news.wmv")
	require.NoError(t, err)
	assert.Equal(t, 3000, len(data))
	assert.Contains(t, stdout, "<mms://media.example.com/live/news.wmv>  =>  'news.wmv'")
	assert.Contains(t, stdout, "Stream download completed.")
}

func TestRecordsToStdout(t *testing.T) {
	lib := &memLibrary{stream: "stream bytes"}

	stdout, _, err := execute(lib, afero.NewMemMapFs(), "mmsh://host/a.wmv", "-")
	require.NoError(t, err)
	assert.Equal(t, "stream bytes", stdout)
}

func TestConnectionFailure(t *testing.T) {
	lib := &memLibrary{err: libmms.ErrConnect}

	_, _, err := execute(lib, afero.NewMemMapFs(), "-q", "mms://host/a.wmv")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.Equal(t, domain.ExitFatal, domain.ExitCode(err))
}

func TestBadLogPathFallsBackToStderr(t *testing.T) {
	t.Setenv("MIMMS_LOGGING_OUTPUT_PATH", "/nonexistent/mimms/run.log")
	fs := afero.NewMemMapFs()

	_, _, err := execute(&memLibrary{stream: "data"}, fs, "-q", "mms://host/a.wmv")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "a.wmv")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestInterruptWhileBlockedOnStdin(t *testing.T) {
	stdin, writer := io.Pipe()
	t.Cleanup(func() { writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, stderr, err := executeContext(ctx, stdin, &memLibrary{}, afero.NewMemMapFs(), "-q", "-", "out.wmv")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.ExitInterrupted, domain.ExitCode(err))
	assert.Contains(t, stderr, "Download aborted by user.")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestInterruptDuringRecording(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lib := &cancelingLibrary{cancel: cancel}
	fs := afero.NewMemMapFs()

	_, _, err := executeContext(ctx, strings.NewReader(""), lib, fs, "-q", "mms://host/a.wmv")
	assert.ErrorIs(t, err, context.Canceled)

	data, err := afero.ReadFile(fs, "a.wmv")
	require.NoError(t, err)
	assert.Equal(t, "chunk", string(data))
}

// cancelingLibrary serves an endless stream and cancels after the first read
type cancelingLibrary struct {
	cancel context.CancelFunc
}

func (l *cancelingLibrary) ConnectMMS(url string, bandwidth int) (libmms.Conn, error) {
	return &cancelingConn{cancel: l.cancel}, nil
}

func (l *cancelingLibrary) ConnectMMSH(url string, bandwidth int) (libmms.Conn, error) {
	return l.ConnectMMS(url, bandwidth)
}

type cancelingConn struct {
	cancel context.CancelFunc
}

func (c *cancelingConn) Read(p []byte) (int, error) {
	c.cancel()
	return copy(p, "chunk"), nil
}
func (c *cancelingConn) Length() uint64   { return 0 }
func (c *cancelingConn) Position() uint64 { return 0 }
func (c *cancelingConn) Close() error     { return nil }

func TestVerboseLogsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimms.log")
	t.Setenv("MIMMS_LOGGING_OUTPUT_PATH", path)

	_, _, err := execute(&memLibrary{stream: "data"}, afero.NewMemMapFs(), "-v", "-q", "mms://host/a.wmv")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "trying mmst transport")
	assert.Contains(t, string(data), "Download completed")
}
