package domain

import "time"

// RecordState represents a state of the streaming copy loop
type RecordState string

const (
	StateConnecting       RecordState = "connecting"
	StateStreaming        RecordState = "streaming"
	StateCompleted        RecordState = "completed"
	StateTimeLimitReached RecordState = "time_limit_reached"
	StateReadError        RecordState = "read_error"
	StateWriteError       RecordState = "write_error"
	StateInterrupted      RecordState = "interrupted"
)

// IsTerminal checks if the loop has stopped
func (s RecordState) IsTerminal() bool {
	return s != StateConnecting && s != StateStreaming
}

// IsSuccess checks if the state is a non-error terminal
func (s RecordState) IsSuccess() bool {
	return s == StateCompleted || s == StateTimeLimitReached
}

// RecordResult summarizes a finished copy loop
type RecordResult struct {
	State        RecordState
	BytesWritten uint64
	Elapsed      time.Duration
}

// maxMinuteStep bounds a single deadline increment
const maxMinuteStep = 1 << 24

// RecordDeadline returns the absolute end of a time-boxed recording.
// The zero Time is returned when minutes is 0. Minutes are added in steps of
// at most 2^24 so that the conversion to a Duration never overflows.
func RecordDeadline(start time.Time, minutes uint32) time.Time {
	if minutes == 0 {
		return time.Time{}
	}
	end := start
	for minutes > 0 {
		step := minutes
		if step > maxMinuteStep {
			step = maxMinuteStep
		}
		end = end.Add(time.Duration(step) * time.Minute)
		minutes -= step
	}
	return end
}
