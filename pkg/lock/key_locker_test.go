package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLockerSerializesSameKey(t *testing.T) {
	l := NewKeyLocker()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock("club-1", func() error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.size())
}

func TestKeyLockerIndependentKeys(t *testing.T) {
	l := NewKeyLocker()

	l.AcquireLock("a")
	done := make(chan struct{})
	go func() {
		_ = l.WithLock("b", func() error { return nil })
		close(done)
	}()
	<-done
	l.ReleaseLock("a")

	assert.Equal(t, 0, l.size())
	assert.Panics(t, func() { l.ReleaseLock("a") })
}
