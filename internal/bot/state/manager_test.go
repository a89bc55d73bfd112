package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryManagerDefaultsToNone(t *testing.T) {
	m := NewMemoryManager()
	assert.Equal(t, None, m.GetUserState(42))
}

func TestMemoryManagerSetAndClear(t *testing.T) {
	m := NewMemoryManager()

	m.SetUserState(42, WaitingForVitals)
	assert.Equal(t, WaitingForVitals, m.GetUserState(42))
	assert.Equal(t, None, m.GetUserState(43))

	m.ClearUserState(42)
	assert.Equal(t, None, m.GetUserState(42))
}

func TestMemoryManagerConcurrentAccess(t *testing.T) {
	m := NewMemoryManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetUserState(id, WaitingForVitals)
			_ = m.GetUserState(id)
			m.ClearUserState(id)
		}(int64(i))
	}
	wg.Wait()
}

func TestMemoryManagerClose(t *testing.T) {
	assert.NoError(t, NewMemoryManager().Close())
}
