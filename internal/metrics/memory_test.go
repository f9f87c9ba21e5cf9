package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestReadRuntime(t *testing.T) {
	t.Parallel()
	s := ReadRuntime()
	if s.HeapAlloc == 0 || s.Sys == 0 {
		t.Errorf("empty heap reading: %+v", s)
	}
	if s.Goroutines < 1 {
		t.Errorf("Goroutines = %d", s.Goroutines)
	}
	if s.At.IsZero() {
		t.Error("sample has no timestamp")
	}
}

func TestRuntimeSampler_Caches(t *testing.T) {
	t.Parallel()
	reads := 0
	s := NewRuntimeSampler(time.Hour)
	s.read = func() RuntimeSample {
		reads++
		return RuntimeSample{HeapAlloc: uint64(reads), At: time.Now()}
	}

	for range 5 {
		if got := s.Sample().HeapAlloc; got != 1 {
			t.Fatalf("HeapAlloc = %d, want the cached first reading", got)
		}
	}
	if reads != 1 {
		t.Errorf("runtime read %d times, want 1", reads)
	}
}

func TestRuntimeSampler_ZeroAgeAlwaysReads(t *testing.T) {
	t.Parallel()
	reads := 0
	s := NewRuntimeSampler(0)
	s.read = func() RuntimeSample {
		reads++
		return RuntimeSample{At: time.Now()}
	}
	s.Sample()
	s.Sample()
	if reads != 2 {
		t.Errorf("runtime read %d times, want 2", reads)
	}
}

func TestRuntimeSampler_Concurrent(t *testing.T) {
	t.Parallel()
	s := NewRuntimeSampler(time.Millisecond)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if s.Sample().Sys == 0 {
					t.Error("Sys = 0")
					return
				}
			}
		}()
	}
	wg.Wait()
}
