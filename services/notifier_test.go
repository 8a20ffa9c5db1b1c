package services

import (
	"errors"
	"sync"
	"testing"
)

func TestMailDispatcherDeliversQueuedMessages(t *testing.T) {
	var mu sync.Mutex
	var delivered []string

	orig := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, to[0])
		return nil
	}
	defer func() { sendMailFunc = orig }()

	d := NewMailDispatcher(nil)
	d.Send("a@school.edu", "s1", "b1")
	d.Send("b@school.edu", "s2", "b2")
	d.Send("", "dropped", "no address")
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(delivered))
	}
	if delivered[0] != "a@school.edu" || delivered[1] != "b@school.edu" {
		t.Fatalf("unexpected delivery order: %v", delivered)
	}
}

func TestMailDispatcherFullQueueDropsInsteadOfBlocking(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	deliveredCount := 0

	orig := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		mu.Lock()
		deliveredCount++
		first := deliveredCount == 1
		mu.Unlock()
		if first {
			close(started)
			<-release
		}
		return nil
	}
	defer func() { sendMailFunc = orig }()

	d := NewMailDispatcher(nil)

	// Park the worker on the first message, then overfill the queue.
	d.Send("first@school.edu", "s", "b")
	<-started
	for i := 0; i < 300; i++ {
		d.Send("bulk@school.edu", "s", "b")
	}
	close(release)
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	// 1 in flight + the queue capacity; the overflow must have been dropped
	// without ever blocking Send.
	if deliveredCount != 257 {
		t.Fatalf("expected 257 deliveries, got %d", deliveredCount)
	}
}

func TestMailDispatcherSwallowsSendFailures(t *testing.T) {
	orig := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		return errTest
	}
	defer func() { sendMailFunc = orig }()

	d := NewMailDispatcher(nil)
	d.Send("a@school.edu", "s", "b")
	// Close returning at all proves the failure did not wedge the worker.
	d.Close()
}

var errTest = errors.New("smtp unavailable")
