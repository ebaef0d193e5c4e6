package worker

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPoolRunsTasks(t *testing.T) {
	p := New(2)
	defer p.Close()

	done := make(chan error, 1)
	ok := p.Submit(func() error { return nil }, func(err error) { done <- err })
	if !ok {
		t.Fatal("Expected submit to succeed")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for task")
	}
}

func TestPoolReportsTaskError(t *testing.T) {
	p := New(1)
	defer p.Close()

	want := errors.New("boom")
	done := make(chan error, 1)
	p.Submit(func() error { return want }, func(err error) { done <- err })
	if got := <-done; !errors.Is(got, want) {
		t.Fatalf("Expected task error, got %v", got)
	}
}

func TestPoolBackpressure(t *testing.T) {
	p := New(1)
	defer p.Close()

	var mu sync.Mutex
	block := make(chan struct{})
	started := make(chan struct{})

	p.Submit(func() error {
		close(started)
		<-block
		return nil
	}, nil)
	<-started

	// Fill the single queue slot, then further submits must be dropped.
	filled := p.Submit(func() error { mu.Lock(); defer mu.Unlock(); return nil }, nil)
	if !filled {
		t.Fatal("Expected queue slot to accept one task")
	}
	if p.Submit(func() error { return nil }, nil) {
		t.Fatal("Expected overflow submit to be dropped")
	}

	close(block)
}
