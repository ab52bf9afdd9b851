// Package libmms describes the MMS protocol library mimms streams from.
//
// The protocol itself (handshake, ASF header parsing, packet reassembly) lives
// in the C library libmms; this package only fixes the Go shape of it so that
// the rest of the program can be built and tested without cgo. The binding is
// in the native subpackage.
package libmms

import (
	"errors"
	"io"
)

var (
	// ErrUnavailable is returned by connects when the binary was built without libmms
	ErrUnavailable = errors.New("libmms support not compiled in (build with -tags libmms)")
	// ErrConnect is returned when libmms could not open the stream
	ErrConnect = errors.New("libmms connection error")
	// ErrRead is returned for a negative libmms read result
	ErrRead = errors.New("libmms read error")
)

// Conn is one open libmms stream
type Conn interface {
	// Read reads up to len(p) bytes. It returns io.EOF at the end of the stream.
	Read(p []byte) (int, error)

	// Length returns the stream length in bytes, 0 if unknown
	Length() uint64

	// Position returns the number of stream bytes consumed so far
	Position() uint64

	// Close releases the connection
	Close() error
}

// Library opens libmms connections. ConnectMMS uses the native TCP protocol,
// ConnectMMSH the HTTP tunneled one.
type Library interface {
	ConnectMMS(url string, bandwidth int) (Conn, error)
	ConnectMMSH(url string, bandwidth int) (Conn, error)
}

// ReadResult maps a raw libmms read count onto io.Reader semantics
func ReadResult(n int) (int, error) {
	switch {
	case n < 0:
		return 0, ErrRead
	case n == 0:
		return 0, io.EOF
	default:
		return n, nil
	}
}

// Position converts a libmms offset, clamping negative values to 0
func Position(off int64) uint64 {
	if off < 0 {
		return 0
	}
	return uint64(off)
}
