package session

import (
	"log"
	"sync"
	"time"

	"paytrack/internal/constants"
)

// SessionManager holds every chat's intake state: the current step tag and
// the scratch record being filled in. Map access is mutex-guarded, and
// Serialize gives each chat a handling lock so its state advances strictly
// sequentially while independent chats interleave freely.
type SessionManager struct {
	mu           sync.RWMutex
	states       map[int64]string       // chatID -> current step tag (constants.STATE_*)
	intakes      map[int64]*IntakeData  // chatID -> partially collected record
	lastActivity map[int64]time.Time    // chatID -> last message time, drives eviction
	chatLocks    map[int64]*sync.Mutex  // chatID -> handling lock, see Serialize
	now          func() time.Time
}

// NewSessionManager creates an empty session store.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		states:       make(map[int64]string),
		intakes:      make(map[int64]*IntakeData),
		lastActivity: make(map[int64]time.Time),
		chatLocks:    make(map[int64]*sync.Mutex),
		now:          time.Now,
	}
}

// Serialize runs fn while holding the chat's handling lock. Messages from
// the same chat are processed one at a time, so two in-flight messages can
// never both read the same pending step and both advance it; different
// chats run concurrently. Locks survive eviction, so an in-flight handler
// never races a handler acquired after the session was rebuilt.
func (sm *SessionManager) Serialize(chatID int64, fn func()) {
	sm.mu.Lock()
	lock, ok := sm.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		sm.chatLocks[chatID] = lock
	}
	sm.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	fn()
}

// GetState returns the chat's current step tag, STATE_IDLE when none is set.
func (sm *SessionManager) GetState(chatID int64) string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	state, ok := sm.states[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState moves the chat to a new step and refreshes its activity stamp.
func (sm *SessionManager) SetState(chatID int64, state string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[chatID] = state
	sm.lastActivity[chatID] = sm.now()
	log.Printf("SessionManager.SetState: chatID %d -> %s", chatID, state)
}

// Touch refreshes the chat's activity stamp without changing state.
func (sm *SessionManager) Touch(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.lastActivity[chatID] = sm.now()
}

// ClearState returns the chat to idle and discards its scratch record.
func (sm *SessionManager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[chatID] = constants.STATE_IDLE
	delete(sm.intakes, chatID)
	log.Printf("SessionManager.ClearState: chatID %d reset to idle", chatID)
}

// GetIntake returns the chat's scratch record, creating an empty one on
// first access.
func (sm *SessionManager) GetIntake(chatID int64) *IntakeData {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	intake, ok := sm.intakes[chatID]
	if !ok {
		intake = &IntakeData{}
		sm.intakes[chatID] = intake
	}
	return intake
}

// UpdateIntake stores the chat's scratch record back.
func (sm *SessionManager) UpdateIntake(chatID int64, intake *IntakeData) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.intakes[chatID] = intake
	sm.lastActivity[chatID] = sm.now()
}

// EvictIdle drops every session whose last activity is older than the
// timeout and returns the evicted chat ids. An evicted chat simply starts
// its next flow from scratch.
func (sm *SessionManager) EvictIdle(timeout time.Duration) []int64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-timeout)
	evicted := []int64{}
	for chatID, last := range sm.lastActivity {
		if last.Before(cutoff) {
			delete(sm.states, chatID)
			delete(sm.intakes, chatID)
			delete(sm.lastActivity, chatID)
			evicted = append(evicted, chatID)
		}
	}
	if len(evicted) > 0 {
		log.Printf("SessionManager.EvictIdle: evicted %d idle sessions", len(evicted))
	}
	return evicted
}

// StartEvictionLoop runs EvictIdle on a fixed cadence until stop is closed.
func (sm *SessionManager) StartEvictionLoop(timeout time.Duration, stop <-chan struct{}) {
	interval := timeout / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sm.EvictIdle(timeout)
			case <-stop:
				return
			}
		}
	}()
}
