package remote

import (
	"io"
	"sync"
)

// Dialer opens a new, independent view of the remote filesystem.
type Dialer func() (FS, error)

// Pool hands out remote filesystem handles to transfer workers so that
// concurrent reads don't share a single protocol channel. Handles are dialed
// lazily and reused across Get/Put cycles, so the pool never holds more
// channels than the peak number of concurrent workers.
type Pool struct {
	dial Dialer

	mu   sync.Mutex
	idle []FS
}

// NewPool creates a Pool that opens handles with the given Dialer.
func NewPool(dial Dialer) *Pool {
	return &Pool{dial: dial}
}

// Get returns an idle handle, dialing a new one if none are available.
func (p *Pool) Get() (FS, error) {
	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		conn := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return conn, nil
	}
	p.mu.Unlock()

	return p.dial()
}

// Put returns a handle to the pool for reuse.
func (p *Pool) Put(conn FS) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle = append(p.idle, conn)
}

// Close closes every idle handle. Handles that are still checked out are
// the caller's responsibility.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, conn := range p.idle {
		closer, ok := conn.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.idle = nil
	return firstErr
}
