package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse to reduce GC pressure when many
// chunks are assembled in a row.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{channels: 1}
			},
		},
	}
}

// Get returns an empty Buffer for channels channels with room for at least
// capRows rows. Callers must return it via Put when done.
func (p *Pool) Get(channels, capRows int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Reset(channels)
	b.Grow(capRows)
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
