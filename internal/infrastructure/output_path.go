package infrastructure

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/yourusername/mimms/internal/domain"
	"go.uber.org/zap"
)

// Destination is where the recorded stream is written
type Destination struct {
	Path     string
	Stdout   bool
	FellBack bool // the derived name existed and the default name is used instead
}

// Name returns the name shown in the header line
func (d Destination) Name() string {
	if d.Stdout {
		return domain.StdinURL
	}
	return d.Path
}

// FileNameFromURL returns the last path segment of url, or defaultName when
// that segment is empty or carries a query
func FileNameFromURL(url, defaultName string) string {
	segment := url[strings.LastIndex(url, "/")+1:]
	if segment == "" || strings.Contains(segment, "?") {
		return defaultName
	}
	return segment
}

// OutputResolver picks the output file for a run
type OutputResolver struct {
	fs          afero.Fs
	defaultName string
	logger      *zap.Logger
}

// NewOutputResolver creates a new output resolver
func NewOutputResolver(fs afero.Fs, config *domain.OutputConfig, logger *zap.Logger) *OutputResolver {
	return &OutputResolver{
		fs:          fs,
		defaultName: config.DefaultName,
		logger:      logger,
	}
}

// Resolve returns the destination for streamURL. Without clobber an existing
// file is never selected: the default name is tried once, after that
// ErrClobber is returned.
func (r *OutputResolver) Resolve(opts domain.Options, streamURL string) (Destination, error) {
	if opts.WriteToStdout {
		return Destination{Stdout: true}, nil
	}

	path := opts.Output
	if path == "" {
		path = FileNameFromURL(streamURL, r.defaultName)
	}
	if opts.AllowClobber {
		return Destination{Path: path}, nil
	}

	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return Destination{}, fmt.Errorf("checking output file: %w", err)
	}
	if !exists {
		return Destination{Path: path}, nil
	}

	exists, err = afero.Exists(r.fs, r.defaultName)
	if err != nil {
		return Destination{}, fmt.Errorf("checking output file: %w", err)
	}
	if exists {
		return Destination{}, fmt.Errorf("%w: '%s'", domain.ErrClobber, path)
	}

	r.logger.Warn("File exists, using default name instead",
		zap.String("file", path),
		zap.String("default", r.defaultName))
	return Destination{Path: r.defaultName, FellBack: true}, nil
}

// OpenSink opens dest for writing. Without clobber the file is created
// exclusively, so a file that appeared after Resolve is not truncated.
// Closing a stdout sink leaves stdout open.
func OpenSink(fsys afero.Fs, dest Destination, clobber bool, stdout io.Writer) (io.WriteCloser, error) {
	if dest.Stdout {
		return &stdoutSink{w: stdout}, nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if clobber {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	f, err := fsys.OpenFile(dest.Path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: '%s'", domain.ErrClobber, dest.Path)
		}
		return nil, fmt.Errorf("%w: opening '%s': %v", domain.ErrWrite, dest.Path, err)
	}
	return f, nil
}

type stdoutSink struct {
	w      io.Writer
	closed bool
}

func (s *stdoutSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.w.Write(p)
}

func (s *stdoutSink) Close() error {
	if s.closed {
		return os.ErrClosed
	}
	s.closed = true
	if f, ok := s.w.(*os.File); ok {
		// Sync fails on pipes and terminals; nothing to report there.
		_ = f.Sync()
	}
	return nil
}
