package pool_test

import (
	"testing"
	"time"

	"github.com/cvest/stormpot-go/pool"
	"github.com/stretchr/testify/require"
	"github.com/valyala/bytebufferpool"
)

// bufferAllocator adapts valyala/bytebufferpool's own Get/Put pair into a
// pool.Allocator, so Pool manages buffer lifetime/expiration/capacity on
// top of an already-pooled resource — the "expensive object" case the
// package exists for, rather than a newly-allocated struct.
type bufferAllocator struct{}

func (bufferAllocator) Allocate(pool.SlotInfo[*bytebufferpool.ByteBuffer]) (*bytebufferpool.ByteBuffer, error) {
	return bytebufferpool.Get(), nil
}

func (bufferAllocator) Deallocate(buf *bytebufferpool.ByteBuffer) {
	bytebufferpool.Put(buf)
}

func TestBufferPoolAllocator(t *testing.T) {
	cfg, err := pool.NewConfigBuilder[*bytebufferpool.ByteBuffer](bufferAllocator{}).
		SetSize(2).
		Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	lease, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, lease)

	buf := lease.Value()
	_, err = buf.WriteString("hello")
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf.Bytes()))

	require.NoError(t, lease.Release())
}
