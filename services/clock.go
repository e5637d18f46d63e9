package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/models"
)

// Broadcaster adalah tujuan event tampilan (display.Hub)
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Clock mengirim waktu saat ini secara periodik. Clock tidak menyentuh cart;
// tick hanya membaca jam.
type Clock struct {
	Target   Broadcaster
	Interval time.Duration
	Now      func() time.Time

	stopChan chan struct{}
	once     sync.Once
}

func NewClock(target Broadcaster, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{
		Target:   target,
		Interval: interval,
		Now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

func (c *Clock) Start() {
	go func() {
		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.tick()
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *Clock) Stop() {
	c.once.Do(func() { close(c.stopChan) })
}

func (c *Clock) tick() {
	c.Target.Broadcast(display.EventClockTick, map[string]string{
		"time": c.Now().Format(models.TimestampLayout),
	})
}
