package infrastructure

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mimms/internal/domain"
	"github.com/yourusername/mimms/pkg/libmms"
	"go.uber.org/zap"
)

type fakeConn struct {
	length   uint64
	position uint64
	closed   bool
}

func (c *fakeConn) Read(p []byte) (int, error) { return 0, io.EOF }
func (c *fakeConn) Length() uint64             { return c.length }
func (c *fakeConn) Position() uint64           { return c.position }
func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeLibrary struct {
	mmsErr    error
	mmshErr   error
	mmsCalls  int
	mmshCalls int
	bandwidth int
}

func (l *fakeLibrary) ConnectMMS(url string, bandwidth int) (libmms.Conn, error) {
	l.mmsCalls++
	l.bandwidth = bandwidth
	if l.mmsErr != nil {
		return nil, l.mmsErr
	}
	return &fakeConn{length: 100, position: 10}, nil
}

func (l *fakeLibrary) ConnectMMSH(url string, bandwidth int) (libmms.Conn, error) {
	l.mmshCalls++
	l.bandwidth = bandwidth
	if l.mmshErr != nil {
		return nil, l.mmshErr
	}
	return &fakeConn{length: 200}, nil
}

func TestTransport_Connect(t *testing.T) {
	tests := []struct {
		name       string
		scheme     domain.Scheme
		mmsErr     error
		mmshErr    error
		wantFlavor Flavor
		wantErr    bool
		mmsCalls   int
		mmshCalls  int
	}{
		{"mms tcp", domain.SchemeMMS, nil, nil, FlavorTCP, false, 1, 0},
		{"mms falls back", domain.SchemeMMS, libmms.ErrConnect, nil, FlavorHTTP, false, 1, 1},
		{"mms both fail", domain.SchemeMMS, libmms.ErrConnect, libmms.ErrConnect, "", true, 1, 1},
		{"mmst tcp only", domain.SchemeMMST, libmms.ErrConnect, nil, "", true, 1, 0},
		{"mmsh http only", domain.SchemeMMSH, nil, nil, FlavorHTTP, false, 0, 1},
		{"mmsh fails", domain.SchemeMMSH, nil, libmms.ErrConnect, "", true, 0, 1},
		{"resolved http", domain.SchemeHTTP, nil, nil, FlavorHTTP, false, 0, 1},
		{"resolved stdin", domain.SchemeStdin, nil, nil, FlavorHTTP, false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := &fakeLibrary{mmsErr: tt.mmsErr, mmshErr: tt.mmshErr}
			transport := NewTransport(lib, zap.NewNop())

			session, err := transport.Connect(context.Background(), tt.scheme, "mms://host/a", 4096)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrConnection)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantFlavor, session.(*Session).Flavor())
				assert.Equal(t, 4096, lib.bandwidth)
			}
			assert.Equal(t, tt.mmsCalls, lib.mmsCalls)
			assert.Equal(t, tt.mmshCalls, lib.mmshCalls)
		})
	}
}

func TestTransport_ConnectCanceled(t *testing.T) {
	lib := &fakeLibrary{}
	transport := NewTransport(lib, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transport.Connect(ctx, domain.SchemeMMS, "mms://host/a", 4096)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, lib.mmsCalls)
}

func TestSession_Delegates(t *testing.T) {
	conn := &fakeConn{length: 1000, position: 250}
	session := &Session{conn: conn, flavor: FlavorTCP}

	assert.Equal(t, uint64(1000), session.TotalLength())
	assert.Equal(t, uint64(250), session.CurrentPosition())

	_, err := session.Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, session.Close())
	assert.True(t, conn.closed)
}
