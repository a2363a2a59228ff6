package panzoom

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLooperOnUIThread(t *testing.T) {
	l := NewLooper()
	if !l.OnUIThread() {
		t.Error("creating goroutine should be the UI goroutine")
	}

	other := make(chan bool)
	go func() { other <- l.OnUIThread() }()
	if <-other {
		t.Error("another goroutine reported OnUIThread")
	}
}

func TestLooperBindMovesOwnership(t *testing.T) {
	l := NewLooper()
	done := make(chan bool)
	go func() {
		l.Bind()
		done <- l.OnUIThread()
	}()
	if !<-done {
		t.Error("Bind did not take ownership")
	}
	if l.OnUIThread() {
		t.Error("previous owner still reports OnUIThread")
	}
}

func TestLooperDrainFIFO(t *testing.T) {
	l := NewLooper()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		if !l.Post(func() { got = append(got, i) }) {
			t.Fatal("Post returned false")
		}
	}
	if l.Pending() != 5 {
		t.Errorf("Pending = %d, want 5", l.Pending())
	}
	if n := l.Drain(); n != 5 {
		t.Errorf("Drain = %d, want 5", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v, want 0..4", got)
		}
	}
	if l.Drain() != 0 {
		t.Error("second Drain ran callbacks")
	}
}

func TestLooperPostDuringDrainRunsNextDrain(t *testing.T) {
	l := NewLooper()
	ran := 0
	l.Post(func() {
		l.Post(func() { ran++ })
	})
	l.Drain()
	if ran != 0 {
		t.Error("nested post ran in the same Drain")
	}
	l.Drain()
	if ran != 1 {
		t.Errorf("nested post ran %d times, want 1", ran)
	}
}

func TestLooperPostRejects(t *testing.T) {
	l := NewLooper()
	if l.Post(nil) {
		t.Error("Post(nil) = true")
	}
	l.Close()
	l.Close() // idempotent
	if l.Post(func() {}) {
		t.Error("Post after Close = true")
	}
}

func TestLooperWakeFunc(t *testing.T) {
	l := NewLooper()
	wakes := 0
	l.SetWakeFunc(func() { wakes++ })
	l.Post(func() {})
	l.Post(func() {})
	if wakes != 2 {
		t.Errorf("wakes = %d, want 2", wakes)
	}
}

func TestLooperConcurrentPost(t *testing.T) {
	l := NewLooper()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Post(func() {
					mu.Lock()
					count++
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()
	l.Drain()
	if count != 800 {
		t.Errorf("count = %d, want 800", count)
	}
}

func TestLooperLoop(t *testing.T) {
	l := NewLooper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	onLoop := make(chan bool, 1)
	errc := make(chan error, 1)
	go func() { errc <- l.Loop(ctx) }()

	// Wait for Loop to bind before posting.
	deadline := time.Now().Add(2 * time.Second)
	for l.OnUIThread() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	l.Post(func() { onLoop <- l.OnUIThread() })

	select {
	case ok := <-onLoop:
		if !ok {
			t.Error("callback did not run on the loop goroutine")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}

	cancel()
	select {
	case err := <-errc:
		if err != context.Canceled {
			t.Errorf("Loop = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not return after cancel")
	}
}

func TestLooperLoopReturnsOnClose(t *testing.T) {
	l := NewLooper()
	errc := make(chan error, 1)
	go func() { errc <- l.Loop(context.Background()) }()
	l.Close()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Loop = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not return after Close")
	}
}

func TestGoroutineID(t *testing.T) {
	id := goroutineID()
	if id <= 0 {
		t.Fatalf("goroutineID = %d, want positive", id)
	}
	other := make(chan int64)
	go func() { other <- goroutineID() }()
	if <-other == id {
		t.Error("two goroutines share an id")
	}
}
