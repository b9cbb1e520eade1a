package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPool_SubmitAndWait(t *testing.T) {
	pool, err := NewPool(3, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer pool.Release()

	var count int32
	for i := 0; i < 50; i++ {
		require.NoError(t, pool.Submit(func() {
			atomic.AddInt32(&count, 1)
		}))
	}
	pool.Wait()

	assert.Equal(t, int32(50), atomic.LoadInt32(&count))
}

func TestPool_PanicDoesNotLeakWait(t *testing.T) {
	pool, err := NewPool(1, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer pool.Release()

	require.NoError(t, pool.Submit(func() { panic("job failed") }))
	ran := false
	require.NoError(t, pool.Submit(func() { ran = true }))
	pool.Wait()

	assert.True(t, ran)
}

func TestPool_SubmitAfterRelease(t *testing.T) {
	pool, err := NewPool(0, zaptest.NewLogger(t))
	require.NoError(t, err)

	pool.Release()
	pool.Release()

	assert.Error(t, pool.Submit(func() {}))
	pool.Wait()
}
