package input

import (
	"sync"
	"time"
)

// DefaultSamplePeriod is roughly one display frame.
const DefaultSamplePeriod = 16 * time.Millisecond

// SendFunc forwards one serialized key state upstream.
type SendFunc func(keys map[string]bool)

// Sampler polls a KeyState on a fixed period and forwards it while any
// tracked control is held. Idle ticks send nothing.
type Sampler struct {
	keys     *KeyState
	period   time.Duration
	send     SendFunc
	done     chan struct{}
	stopOnce sync.Once
}

func NewSampler(keys *KeyState, period time.Duration, send SendFunc) *Sampler {
	if period <= 0 {
		period = DefaultSamplePeriod
	}
	return &Sampler{
		keys:   keys,
		period: period,
		send:   send,
		done:   make(chan struct{}),
	}
}

func (s *Sampler) Start() {
	go s.loop()
}

func (s *Sampler) loop() {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

// sample sends at most one message per invocation.
func (s *Sampler) sample() {
	keys, any := s.keys.Snapshot()
	if !any {
		return
	}
	s.send(keys)
}

// Stop is idempotent and safe to call from Cleanup paths that may run twice.
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
