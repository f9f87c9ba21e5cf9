package metrics

import (
	"runtime"
	"sync"
	"time"
)

// RuntimeSample is one reading of the Go runtime's heap and scheduler.
type RuntimeSample struct {
	HeapAlloc  uint64
	HeapSys    uint64
	Sys        uint64
	NumGC      uint32
	PauseTotal time.Duration
	Goroutines int
	At         time.Time
}

// ReadRuntime takes a sample. runtime.ReadMemStats stops the world briefly.
func ReadRuntime() RuntimeSample {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSample{
		HeapAlloc:  m.HeapAlloc,
		HeapSys:    m.HeapSys,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		PauseTotal: time.Duration(m.PauseTotalNs),
		Goroutines: runtime.NumGoroutine(),
		At:         time.Now(),
	}
}

// RuntimeSampler hands out the last sample while it is younger than maxAge.
// It is safe for concurrent use.
type RuntimeSampler struct {
	mu     sync.Mutex
	maxAge time.Duration
	last   RuntimeSample
	read   func() RuntimeSample
}

// NewRuntimeSampler returns a sampler caching readings for maxAge. A zero
// maxAge reads the runtime on every call.
func NewRuntimeSampler(maxAge time.Duration) *RuntimeSampler {
	return &RuntimeSampler{maxAge: maxAge, read: ReadRuntime}
}

// Sample returns a reading no older than maxAge.
func (s *RuntimeSampler) Sample() RuntimeSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last.At.IsZero() || time.Since(s.last.At) >= s.maxAge {
		s.last = s.read()
	}
	return s.last
}
