package flight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_SingleCaller(t *testing.T) {
	var g Group[string]

	got, err := g.Do("key", func() (string, error) {
		return "value", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}
	if g.Len() != 0 {
		t.Fatalf("len = %d after completion, want 0", g.Len())
	}
}

func TestGroup_ConcurrentCallersShareOneProducer(t *testing.T) {
	var g Group[int]
	var invocations int64

	release := make(chan struct{})
	const callers = 50

	var wg sync.WaitGroup
	results := make([]int, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.Do("stats", func() (int, error) {
				atomic.AddInt64(&invocations, 1)
				<-release
				return 42, nil
			})
		}(i)
	}

	// Let the callers pile up on the in-flight call, then release it.
	waitFor(t, func() bool { return g.Len() == 1 })
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt64(&invocations); n != 1 {
		t.Fatalf("producer invoked %d times, want 1", n)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d error: %v", i, errs[i])
		}
		if results[i] != 42 {
			t.Fatalf("caller %d result = %d, want 42", i, results[i])
		}
	}
}

func TestGroup_ErrorPropagatesToAllJoiners(t *testing.T) {
	var g Group[int]
	wantErr := errors.New("store unavailable")

	release := make(chan struct{})
	const callers = 10

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.Do("key", func() (int, error) {
				<-release
				return 0, wantErr
			})
		}(i)
	}

	waitFor(t, func() bool { return g.Len() == 1 })
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, wantErr) {
			t.Fatalf("caller %d error = %v, want %v", i, err, wantErr)
		}
	}
}

func TestGroup_KeyFreedAfterFailure(t *testing.T) {
	var g Group[int]

	_, err := g.Do("key", func() (int, error) {
		return 0, errors.New("transient")
	})
	if err == nil {
		t.Fatal("expected error from first call")
	}

	// The failed call must not be replayed; a fresh invocation runs.
	got, err := g.Do("key", func() (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if got != 7 {
		t.Fatalf("second call = %d, want 7", got)
	}
}

func TestGroup_DistinctKeysRunIndependently(t *testing.T) {
	var g Group[string]
	var invocations int64

	blockA := make(chan struct{})
	done := make(chan struct{})
	go func() {
		g.Do("a", func() (string, error) {
			atomic.AddInt64(&invocations, 1)
			<-blockA
			return "a", nil
		})
		close(done)
	}()

	waitFor(t, func() bool { return g.Len() == 1 })

	// A different key must not join the in-flight "a" call.
	got, err := g.Do("b", func() (string, error) {
		atomic.AddInt64(&invocations, 1)
		return "b", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "b" {
		t.Fatalf("got %q, want %q", got, "b")
	}

	close(blockA)
	<-done
	if n := atomic.LoadInt64(&invocations); n != 2 {
		t.Fatalf("invocations = %d, want 2", n)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
