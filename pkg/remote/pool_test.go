package remote

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

type fakeConn struct {
	id     int
	closed bool
}

func (*fakeConn) ReadDir(string) ([]Entry, error)    { return nil, nil }
func (*fakeConn) Open(string) (io.ReadCloser, error) { return nil, nil }
func (c *fakeConn) Close() error                     { c.closed = true; return nil }

func TestPoolReusesConnections(t *testing.T) {
	var dialed int
	pool := NewPool(func() (FS, error) {
		dialed++
		return &fakeConn{id: dialed}, nil
	})

	first, err := pool.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, dialed)

	// Nothing idle, so a second Get dials again.
	second, err := pool.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, dialed)

	// A returned connection is handed back out instead of dialing.
	pool.Put(first)
	reused, err := pool.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, dialed)
	assert.Same(t, first, reused)

	pool.Put(second)
	pool.Put(reused)
}

func TestPoolDialError(t *testing.T) {
	dialErr := errors.New("connection refused")
	pool := NewPool(func() (FS, error) {
		return nil, dialErr
	})

	_, err := pool.Get()
	assert.Equal(t, dialErr, err)
}

func TestPoolCloseClosesIdle(t *testing.T) {
	conns := []*fakeConn{{id: 1}, {id: 2}}
	i := 0
	pool := NewPool(func() (FS, error) {
		if i >= len(conns) {
			return nil, errors.New("out of connections")
		}
		conn := conns[i]
		i++
		return conn, nil
	})

	first, err := pool.Get()
	require.NoError(t, err)
	second, err := pool.Get()
	require.NoError(t, err)
	pool.Put(first)
	pool.Put(second)

	require.NoError(t, pool.Close())
	for _, conn := range conns {
		assert.True(t, conn.closed)
	}

	// Close drained the idle list, so the next Get dials fresh.
	_, err = pool.Get()
	assert.Error(t, err)
}
