package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/constants"
)

func TestGetStateDefaultsToIdle(t *testing.T) {
	sm := NewSessionManager()
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(42))
}

func TestSetAndClearState(t *testing.T) {
	sm := NewSessionManager()

	sm.SetState(42, constants.STATE_WORKER_NAME)
	assert.Equal(t, constants.STATE_WORKER_NAME, sm.GetState(42))

	intake := sm.GetIntake(42)
	intake.Worker.Name = "Ram Singh"
	sm.UpdateIntake(42, intake)

	sm.ClearState(42)
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(42))
	// Scratch record is discarded with the state.
	assert.Equal(t, "", sm.GetIntake(42).Worker.Name)
}

func TestIntakeIsolationBetweenChats(t *testing.T) {
	sm := NewSessionManager()

	first := sm.GetIntake(1)
	first.Worker.Name = "Ram Singh"
	sm.UpdateIntake(1, first)

	second := sm.GetIntake(2)
	second.Worker.Name = "Shyam Lal"
	sm.UpdateIntake(2, second)

	assert.Equal(t, "Ram Singh", sm.GetIntake(1).Worker.Name)
	assert.Equal(t, "Shyam Lal", sm.GetIntake(2).Worker.Name)
}

func TestSerializeSameChatAdvancesOneStepPerMessage(t *testing.T) {
	sm := NewSessionManager()
	sm.SetState(1, constants.STATE_WORKER_NAME)

	// Two messages arrive back to back and are handled concurrently. Only
	// one of them may observe the pending step and advance it; the other
	// must see the step the first one left behind.
	var observed []string
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sm.Serialize(1, func() {
				state := sm.GetState(1)
				observed = append(observed, state)
				if state == constants.STATE_WORKER_NAME {
					sm.SetState(1, constants.STATE_WORKER_PHONE)
				}
			})
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []string{constants.STATE_WORKER_NAME, constants.STATE_WORKER_PHONE}, observed)
	assert.Equal(t, constants.STATE_WORKER_PHONE, sm.GetState(1))
}

func TestSerializeIndependentChatsDoNotBlock(t *testing.T) {
	sm := NewSessionManager()
	entered := make(chan struct{})
	release := make(chan struct{})
	go sm.Serialize(1, func() {
		close(entered)
		<-release
	})
	<-entered

	done := make(chan struct{})
	go func() {
		sm.Serialize(2, func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("message for chat 2 waited on chat 1's handling lock")
	}

	close(release)
	sm.Serialize(1, func() {})
}

func TestEvictIdle(t *testing.T) {
	sm := NewSessionManager()
	current := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return current }

	sm.SetState(1, constants.STATE_WORKER_NAME)
	sm.SetState(2, constants.STATE_CROP_NAME)

	// Chat 2 stays active; chat 1 goes quiet.
	current = current.Add(20 * time.Minute)
	sm.Touch(2)

	current = current.Add(15 * time.Minute)
	evicted := sm.EvictIdle(30 * time.Minute)

	assert.Equal(t, []int64{1}, evicted)
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(1))
	assert.Equal(t, constants.STATE_CROP_NAME, sm.GetState(2))
}

func TestEvictIdleNothingToDo(t *testing.T) {
	sm := NewSessionManager()
	sm.SetState(1, constants.STATE_WORKER_NAME)

	evicted := sm.EvictIdle(30 * time.Minute)
	assert.Empty(t, evicted)
	assert.Equal(t, constants.STATE_WORKER_NAME, sm.GetState(1))
}
