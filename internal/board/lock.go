package board

import "sync"

// keyedLock is held by one caller; waiters queue behind it in arrival order.
type keyedLock struct {
	waiters []chan struct{}
}

// keyedMutex hands out one lock per task id and forgets it once no caller
// holds or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedLock
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[int64]*keyedLock{}}
}

// Lock blocks until id is free and returns the matching unlock. Callers waiting
// on the same id are served first come, first served.
func (k *keyedMutex) Lock(id int64) func() {
	k.mu.Lock()

	lock, held := k.locks[id]
	if !held {
		k.locks[id] = &keyedLock{}
		k.mu.Unlock()

		return k.unlocker(id)
	}

	turn := make(chan struct{})
	lock.waiters = append(lock.waiters, turn)
	k.mu.Unlock()

	<-turn

	return k.unlocker(id)
}

func (k *keyedMutex) unlocker(id int64) func() {
	var once sync.Once

	return func() {
		once.Do(func() {
			k.mu.Lock()
			defer k.mu.Unlock()

			lock := k.locks[id]
			if len(lock.waiters) == 0 {
				delete(k.locks, id)

				return
			}

			next := lock.waiters[0]
			lock.waiters = lock.waiters[1:]
			close(next)
		})
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.locks)
}
