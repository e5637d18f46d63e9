package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-billing/display"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
	data   []interface{}
}

func (r *recordingBroadcaster) Broadcast(event string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.data = append(r.data, data)
}

func (r *recordingBroadcaster) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestClockTickFormatsTime(t *testing.T) {
	rec := &recordingBroadcaster{}
	clock := NewClock(rec, time.Second)
	clock.Now = func() time.Time { return fixedNow }

	clock.tick()

	require.Len(t, rec.events, 1)
	assert.Equal(t, display.EventClockTick, rec.events[0])
	assert.Equal(t, map[string]string{"time": "2024-03-15 12:30:00"}, rec.data[0])
}

func TestClockStartStop(t *testing.T) {
	rec := &recordingBroadcaster{}
	clock := NewClock(rec, 5*time.Millisecond)
	clock.Start()

	assert.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 5*time.Millisecond)

	clock.Stop()
	clock.Stop()
	time.Sleep(20 * time.Millisecond)
	n := rec.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, rec.count())
}

func TestNewClockDefaultsInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewClock(&recordingBroadcaster{}, 0).Interval)
}
