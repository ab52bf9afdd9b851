package infrastructure

import (
	"context"
	"fmt"

	"github.com/yourusername/mimms/internal/domain"
	"github.com/yourusername/mimms/pkg/libmms"
	"go.uber.org/zap"
)

// Flavor is the libmms protocol a session was opened with
type Flavor string

const (
	FlavorTCP  Flavor = "mms"
	FlavorHTTP Flavor = "mmsh"
)

// Session is an open stream. It implements domain.TransportSession.
type Session struct {
	conn   libmms.Conn
	flavor Flavor
}

// Flavor returns the protocol the session uses
func (s *Session) Flavor() Flavor {
	return s.flavor
}

// Read reads the next chunk of the stream
func (s *Session) Read(p []byte) (int, error) {
	return s.conn.Read(p)
}

// TotalLength returns the stream length in bytes, 0 if unknown
func (s *Session) TotalLength() uint64 {
	return s.conn.Length()
}

// CurrentPosition returns the bytes consumed so far
func (s *Session) CurrentPosition() uint64 {
	return s.conn.Position()
}

// Close releases the connection
func (s *Session) Close() error {
	return s.conn.Close()
}

// Transport opens sessions with libmms, falling back from TCP to HTTP
type Transport struct {
	lib    libmms.Library
	logger *zap.Logger
}

// NewTransport creates a new transport
func NewTransport(lib libmms.Library, logger *zap.Logger) *Transport {
	return &Transport{
		lib:    lib,
		logger: logger,
	}
}

// Connect opens url. mms:// tries TCP and then HTTP, mmst:// only TCP and
// every other scheme only HTTP.
func (t *Transport) Connect(ctx context.Context, scheme domain.Scheme, url string, bandwidth int) (domain.TransportSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if scheme.TriesTCP() {
		t.logger.Debug("trying mmst transport", zap.String("url", url))
		conn, err := t.lib.ConnectMMS(url, bandwidth)
		if err == nil {
			return &Session{conn: conn, flavor: FlavorTCP}, nil
		}
		if scheme == domain.SchemeMMST {
			return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
		}
		t.logger.Debug("mmst connect failed", zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.logger.Debug("trying mmsh transport", zap.String("url", url))
	conn, err := t.lib.ConnectMMSH(url, bandwidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	return &Session{conn: conn, flavor: FlavorHTTP}, nil
}
