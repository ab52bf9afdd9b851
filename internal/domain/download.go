package domain

import (
	"time"

	"github.com/google/uuid"
)

// Download represents one run of the recorder
type Download struct {
	ID           string
	URL          string // url argument as given
	StreamURL    string // url after playlist/stdin resolution
	Scheme       Scheme
	Destination  string
	Status       RecordState
	BytesWritten uint64
	ErrorMessage string
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// NewDownload creates a new download for the parsed options
func NewDownload(opts Options) *Download {
	return &Download{
		ID:        uuid.New().String(),
		URL:       opts.URL,
		StreamURL: opts.URL,
		Scheme:    opts.Scheme,
		Status:    StateConnecting,
		StartedAt: time.Now(),
	}
}

// MarkStreaming marks the download as streaming
func (d *Download) MarkStreaming() {
	d.Status = StateStreaming
}

// MarkFinished records the outcome of the copy loop
func (d *Download) MarkFinished(result RecordResult, err error) {
	d.Status = result.State
	d.BytesWritten = result.BytesWritten
	if err != nil {
		d.ErrorMessage = err.Error()
	}
	now := time.Now()
	d.CompletedAt = &now
}

// MarkFailed marks a download that never reached the copy loop
func (d *Download) MarkFailed(err error) {
	d.ErrorMessage = err.Error()
	now := time.Now()
	d.CompletedAt = &now
}

// IsTerminal checks if the download is in a terminal state
func (d *Download) IsTerminal() bool {
	return d.CompletedAt != nil
}

// Elapsed returns the wall time of the run so far
func (d *Download) Elapsed() time.Duration {
	if d.CompletedAt != nil {
		return d.CompletedAt.Sub(d.StartedAt)
	}
	return time.Since(d.StartedAt)
}
