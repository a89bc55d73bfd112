package state

import "sync"

// Conversation states.
const (
	None             = "none"
	WaitingForVitals = "waiting_for_vitals"
)

// Manager tracks per-chat conversation state. Implementations must be
// safe for concurrent use.
type Manager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	Close() error
}

// MemoryManager keeps conversation state in process memory. State is
// lost on restart, which only costs the user a /start.
type MemoryManager struct {
	userStates map[int64]string
	mu         sync.RWMutex
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{userStates: make(map[int64]string)}
}

func (m *MemoryManager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

func (m *MemoryManager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

func (m *MemoryManager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

func (m *MemoryManager) Close() error {
	return nil
}
