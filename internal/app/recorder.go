package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/yourusername/mimms/internal/domain"
	"go.uber.org/zap"
)

// StatusWriter receives rendered progress lines
type StatusWriter interface {
	Status(line string)
}

// Recorder copies a transport session into a sink
type Recorder struct {
	status    StatusWriter
	logger    *zap.Logger
	now       func() time.Time
	chunkSize int
	interval  time.Duration
}

// NewRecorder creates a new recorder
func NewRecorder(config *domain.Config, status StatusWriter, logger *zap.Logger) *Recorder {
	return &Recorder{
		status:    status,
		logger:    logger,
		now:       time.Now,
		chunkSize: config.Transport.ChunkSize,
		interval:  config.Progress.Interval,
	}
}

// WithClock replaces the time source, for tests
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record reads session until end of stream, the time limit, a read or write
// failure, or cancellation of ctx. Every chunk read is written before the
// loop stops. The sink is not closed.
func (r *Recorder) Record(ctx context.Context, session domain.TransportSession, sink io.Writer, opts domain.Options) (domain.RecordResult, error) {
	start := r.now()
	deadline := domain.RecordDeadline(start, opts.RecordMinutes)
	if !deadline.IsZero() {
		r.logger.Debug("recording time limit set",
			zap.Time("now", start),
			zap.Time("end", deadline))
	}

	report := opts.ShowsStatus()
	buf := make([]byte, r.chunkSize)

	var (
		written     uint64
		windowBytes uint64
		rate        float64
		windowStart = start
	)

	finish := func(state domain.RecordState, err error) (domain.RecordResult, error) {
		return domain.RecordResult{
			State:        state,
			BytesWritten: written,
			Elapsed:      r.now().Sub(start),
		}, err
	}

	for {
		n, readErr := session.Read(buf)
		if n > 0 {
			if report {
				windowBytes += uint64(n)
				now := r.now()
				if window := now.Sub(windowStart); window >= r.interval {
					sample := domain.NextSample(rate, windowBytes, window,
						session.CurrentPosition(), session.TotalLength())
					rate = sample.BytesPerSecond
					windowBytes = 0
					windowStart = now
					r.status.Status(sample.String())
				}
			}

			m, err := WriteFull(sink, buf[:n])
			written += uint64(m)
			if err != nil {
				return finish(domain.StateWriteError, fmt.Errorf("%w: %v", domain.ErrWrite, err))
			}
		}

		switch {
		case errors.Is(readErr, io.EOF):
			r.logger.Debug("end of stream", zap.Uint64("bytes", written))
			return finish(domain.StateCompleted, nil)
		case readErr != nil:
			return finish(domain.StateReadError, fmt.Errorf("%w: %v", domain.ErrRead, readErr))
		}

		if !deadline.IsZero() && r.now().After(deadline) {
			r.logger.Debug("recording time limit reached", zap.Uint64("bytes", written))
			return finish(domain.StateTimeLimitReached, nil)
		}

		if err := ctx.Err(); err != nil {
			return finish(domain.StateInterrupted, err)
		}
	}
}

// WriteFull writes all of p, retrying short writes. A write that makes no
// progress is reported as io.ErrShortWrite.
func WriteFull(w io.Writer, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := w.Write(p[total:])
		if n < 0 {
			n = 0
		}
		total += n
		if err != nil && !(errors.Is(err, io.ErrShortWrite) && n > 0) {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}
