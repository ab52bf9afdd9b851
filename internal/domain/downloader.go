package domain

import (
	"context"
	"io"
)

// TransportSession is an open stream from the protocol library.
// Read returns io.EOF once the stream has ended.
type TransportSession interface {
	io.ReadCloser
	TotalLength() uint64 // 0 when unknown
	CurrentPosition() uint64
}

// Connector opens transport sessions for a scheme
type Connector interface {
	Connect(ctx context.Context, scheme Scheme, url string, bandwidth int) (TransportSession, error)
}
