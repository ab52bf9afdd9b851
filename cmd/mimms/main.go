package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/mimms/internal/app"
	"github.com/yourusername/mimms/internal/domain"
	"github.com/yourusername/mimms/internal/infrastructure"
	"github.com/yourusername/mimms/pkg/libmms"
	"github.com/yourusername/mimms/pkg/libmms/native"
	"github.com/yourusername/mimms/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// Restore the default handlers so a second signal kills the process.
		<-ctx.Done()
		stop()
	}()
	err := newRootCommand(native.Open(), afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	os.Exit(domain.ExitCode(err))
}

func newRootCommand(lib libmms.Library, fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "mimms [options] <url> [output]",
		Short: "mimms - an MMS (e.g. mms://) stream downloader",
		// Options are parsed by domain.ParseOptions so that -t, -b and
		// the positional rules behave the same everywhere.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), lib, fs, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func run(ctx context.Context, lib libmms.Library, fs afero.Fs, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts := domain.ParseOptions(args)
	if opts.Help {
		printHelp(stdout, domain.DefaultBandwidth)
		return nil
	}
	if opts.Invalid {
		for _, diagnostic := range opts.Diagnostics {
			fmt.Fprintf(stderr, "Error: %s\n", diagnostic)
		}
		printHelp(stderr, domain.DefaultBandwidth)
		return opts.UsageError()
	}

	config, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return err
	}
	if opts.Verbose {
		config.Logging.Level = "debug"
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		log = logger.NewDefault()
		closeLog = func() error { return log.Sync() }
		log.Warn("Failed to initialize logger, logging to stderr",
			zap.String("output_path", config.Logging.OutputPath),
			zap.Error(err))
	}
	defer func() { _ = closeLog() }()

	log.Debug("options",
		zap.String("url", opts.URL),
		zap.Stringer("scheme", opts.Scheme),
		zap.String("output", opts.Output),
		zap.Bool("stdout", opts.WriteToStdout),
		zap.Bool("clobber", opts.AllowClobber),
		zap.Uint32("time", opts.RecordMinutes),
		zap.Int("bandwidth", opts.Bandwidth),
		zap.Bool("quiet", opts.Quiet))

	console := infrastructure.NewConsole(stdout, opts.ShowsStatus())
	downloader := app.NewDownloader(
		infrastructure.NewURLResolver(newFetcher(config, log), stdin, log),
		infrastructure.NewOutputResolver(fs, &config.Output, log),
		infrastructure.NewTransport(lib, log),
		app.NewRecorder(config, console, log),
		console,
		fs,
		stdout,
		config,
		log,
	)

	download, err := runUntilCanceled(ctx, downloader, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Download aborted by user.")
			return err
		}
		if download == nil {
			return err
		}
		log.Error("Download failed",
			zap.String("run", download.ID),
			zap.String("url", download.StreamURL),
			zap.Error(err))
		return err
	}
	return nil
}

// abortGrace is how long a canceled run gets to close its output before it
// is abandoned
const abortGrace = 500 * time.Millisecond

type runResult struct {
	download *domain.Download
	err      error
}

// runUntilCanceled runs the downloader but returns once ctx is canceled,
// even if the run is blocked in a stdin read, a connect or a libmms read
// that cannot observe ctx.
func runUntilCanceled(ctx context.Context, downloader *app.Downloader, opts domain.Options) (*domain.Download, error) {
	done := make(chan runResult, 1)
	go func() {
		download, err := downloader.Run(ctx, opts)
		done <- runResult{download: download, err: err}
	}()

	select {
	case res := <-done:
		return res.download, res.err
	case <-ctx.Done():
	}

	select {
	case res := <-done:
		return res.download, res.err
	case <-time.After(abortGrace):
		return nil, ctx.Err()
	}
}

func newFetcher(config *domain.Config, log *zap.Logger) infrastructure.Fetcher {
	if config.Fetch.Method == domain.FetchMethodWget {
		return infrastructure.NewWgetFetcher(config.Fetch.WgetPath, &config.Fetch, log)
	}
	return infrastructure.NewHTTPFetcher(&config.Fetch)
}
