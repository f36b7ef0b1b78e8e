package lock

import (
	"sync"
)

// KeyLocker hands out one mutex per key. Entries are dropped once nobody holds
// or waits on them.
type KeyLocker struct {
	mapMutex sync.Mutex
	keys     map[string]*keyMutex
}

type keyMutex struct {
	mu   sync.Mutex
	refs int
}

func NewKeyLocker() *KeyLocker {
	return &KeyLocker{keys: make(map[string]*keyMutex)}
}

func (l *KeyLocker) AcquireLock(key string) {
	l.mapMutex.Lock()
	km, ok := l.keys[key]
	if !ok {
		km = &keyMutex{}
		l.keys[key] = km
	}
	km.refs++
	l.mapMutex.Unlock()

	km.mu.Lock()
}

// ReleaseLock unlocks key. Releasing a key that is not held panics, as it
// would for a sync.Mutex.
func (l *KeyLocker) ReleaseLock(key string) {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()

	km, ok := l.keys[key]
	if !ok {
		panic("lock: release of unlocked key " + key)
	}

	km.refs--
	if km.refs == 0 {
		delete(l.keys, key)
	}
	km.mu.Unlock()
}

func (l *KeyLocker) WithLock(key string, f func() error) error {
	l.AcquireLock(key)
	defer l.ReleaseLock(key)
	return f()
}

func (l *KeyLocker) size() int {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()
	return len(l.keys)
}
