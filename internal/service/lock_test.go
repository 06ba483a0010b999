package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locks := newKeyedMutex()
	id := uuid.New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(id)
			v := counter
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.size())
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	locks := newKeyedMutex()
	a, b := uuid.New(), uuid.New()

	unlockA := locks.Lock(a)
	done := make(chan struct{})
	go func() {
		// блокировка другого ключа не ждет освобождения a
		unlockB := locks.Lock(b)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()

	assert.Equal(t, 0, locks.size())
}
