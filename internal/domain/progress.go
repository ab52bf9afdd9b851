package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	kib = 1024.0
	mib = 1024.0 * kib
	gib = 1024.0 * mib
)

// FormatBytes renders a byte count with binary prefixes
func FormatBytes(bytes float64) string {
	switch {
	case bytes < 0 || math.IsNaN(bytes) || math.IsInf(bytes, 0):
		return "∞ B"
	case bytes < kib:
		return fmt.Sprintf("%.2f B", bytes)
	case bytes < mib:
		return fmt.Sprintf("%.2f KiB", bytes/kib)
	case bytes < gib:
		return fmt.Sprintf("%.2f MiB", bytes/mib)
	default:
		return fmt.Sprintf("%.2f GiB", bytes/gib)
	}
}

// FormatDuration renders a number of seconds as seconds, minutes or hours
func FormatDuration(seconds float64) string {
	switch {
	case seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0):
		return "∞ s"
	case seconds < 60:
		return fmt.Sprintf("%.2f s", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%.2f min", seconds/60)
	default:
		return fmt.Sprintf("%.2f hours", seconds/(60*60))
	}
}

// FormatClock renders an elapsed duration as HH:MM:SS
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// ProgressSample is one status tick of a running download
type ProgressSample struct {
	BytesReceived    uint64
	BytesTotal       uint64 // 0 when the stream length is unknown
	BytesPerSecond   float64
	SecondsRemaining float64 // +Inf when unknown
}

// NextSample computes the sample for a tick. The rate is an exponential moving
// average with factor 0.5 over the instantaneous rate of the last window.
func NextSample(prevRate float64, windowBytes uint64, window time.Duration, received, total uint64) ProgressSample {
	rate := prevRate
	if window > 0 {
		instant := float64(windowBytes) / window.Seconds()
		rate = (prevRate + instant) / 2
	}

	remaining := math.Inf(1)
	if rate > 0 && total > 0 {
		left := float64(total) - float64(received)
		if left < 0 {
			left = 0
		}
		remaining = left / rate
	}

	return ProgressSample{
		BytesReceived:    received,
		BytesTotal:       total,
		BytesPerSecond:   rate,
		SecondsRemaining: remaining,
	}
}

// String renders the status line for the sample
func (s ProgressSample) String() string {
	total := FormatBytes(float64(s.BytesTotal))
	if s.BytesTotal == 0 {
		total = FormatBytes(math.Inf(1))
	}
	return fmt.Sprintf("%s / %s (%s/s, %s remaining)",
		FormatBytes(float64(s.BytesReceived)),
		total,
		FormatBytes(s.BytesPerSecond),
		FormatDuration(s.SecondsRemaining))
}
