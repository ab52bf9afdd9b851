package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/yourusername/mimms/internal/domain"
	"github.com/yourusername/mimms/internal/infrastructure"
	"go.uber.org/zap"
)

// Downloader runs one recording: resolve the URL, pick the output, connect
// and copy the stream
type Downloader struct {
	resolver  *infrastructure.URLResolver
	outputs   *infrastructure.OutputResolver
	connector domain.Connector
	recorder  *Recorder
	console   *infrastructure.Console
	fs        afero.Fs
	stdout    io.Writer
	config    *domain.Config
	logger    *zap.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(
	resolver *infrastructure.URLResolver,
	outputs *infrastructure.OutputResolver,
	connector domain.Connector,
	recorder *Recorder,
	console *infrastructure.Console,
	fs afero.Fs,
	stdout io.Writer,
	config *domain.Config,
	logger *zap.Logger,
) *Downloader {
	return &Downloader{
		resolver:  resolver,
		outputs:   outputs,
		connector: connector,
		recorder:  recorder,
		console:   console,
		fs:        fs,
		stdout:    stdout,
		config:    config,
		logger:    logger,
	}
}

// Run records the stream named by opts. The returned download is never nil;
// its status reflects how far the run got.
func (d *Downloader) Run(ctx context.Context, opts domain.Options) (*domain.Download, error) {
	download := domain.NewDownload(opts)
	log := d.logger.With(zap.String("run", download.ID))

	log.Debug("Processing download",
		zap.String("url", opts.URL),
		zap.Stringer("scheme", opts.Scheme))

	scheme := opts.Scheme
	if scheme.NeedsResolution() {
		d.console.Print("Searching for MMS URL...")
		download.StreamURL = d.resolver.Resolve(ctx, opts)
		scheme = connectScheme(download.StreamURL)
	}

	dest, err := d.outputs.Resolve(opts, download.StreamURL)
	if err != nil {
		download.MarkFailed(err)
		return download, err
	}
	download.Destination = dest.Name()

	d.console.Line(fmt.Sprintf("<%s>  =>  '%s'", download.StreamURL, dest.Name()))
	d.console.Print("Connecting...")

	bandwidth := opts.Bandwidth
	if bandwidth == 0 {
		bandwidth = d.config.Transport.Bandwidth
	}

	session, err := d.connector.Connect(ctx, scheme, download.StreamURL, bandwidth)
	if err != nil {
		d.console.Finish()
		download.MarkFailed(err)
		return download, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Debug("Failed to close session", zap.Error(err))
		}
	}()

	log.Debug("connected",
		zap.Stringer("scheme", scheme),
		zap.Uint64("length", session.TotalLength()))

	sink, err := infrastructure.OpenSink(d.fs, dest, opts.AllowClobber, d.stdout)
	if err != nil {
		d.console.Finish()
		download.MarkFailed(err)
		return download, err
	}

	download.MarkStreaming()
	result, err := d.recorder.Record(ctx, session, sink, opts)
	if closeErr := sink.Close(); closeErr != nil && err == nil {
		result.State = domain.StateWriteError
		err = fmt.Errorf("%w: %v", domain.ErrWrite, closeErr)
	}
	download.MarkFinished(result, err)
	d.console.Finish()

	if err != nil {
		return download, err
	}

	if result.State == domain.StateTimeLimitReached {
		d.console.Line("Recording time limit reached.")
	}
	d.console.Line("Stream download completed.")
	d.console.Line("Download time: " + domain.FormatClock(result.Elapsed))

	log.Debug("Download completed",
		zap.String("file", download.Destination),
		zap.Uint64("bytes", download.BytesWritten),
		zap.Duration("elapsed", result.Elapsed),
		zap.Duration("total", download.Elapsed()))

	return download, nil
}

// connectScheme picks the transport for a URL found by resolution. Anything
// that is not an MMS URL is handed to the HTTP transport as is.
func connectScheme(url string) domain.Scheme {
	scheme, err := domain.ClassifyURL(url)
	if err != nil || scheme.NeedsResolution() {
		return domain.SchemeMMSH
	}
	return scheme
}
