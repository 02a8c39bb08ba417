package broker

import (
	"context"
	"testing"
	"time"
)

func TestInMemory_PublishSubscribe(t *testing.T) {
	b := NewInMemory()
	defer b.Close()
	ctx := context.Background()

	ch, err := b.Subscribe(ctx, "lintwell.requests", "test-group")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	if err := b.Publish(ctx, "lintwell.requests", "req-1", []byte("payload")); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	select {
	case msg := <-ch:
		if msg.Topic != "lintwell.requests" || msg.Key != "req-1" || string(msg.Value) != "payload" {
			t.Errorf("unexpected message: %+v", msg)
		}
		if msg.Offset != 0 {
			t.Errorf("first message should have offset 0, got %d", msg.Offset)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestInMemory_BroadcastToAllSubscribers(t *testing.T) {
	b := NewInMemory()
	defer b.Close()
	ctx := context.Background()

	ch1, _ := b.Subscribe(ctx, "topic", "g1")
	ch2, _ := b.Subscribe(ctx, "topic", "g2")

	if err := b.Publish(ctx, "topic", "k", []byte("v")); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	for i, ch := range []<-chan Message{ch1, ch2} {
		select {
		case msg := <-ch:
			if string(msg.Value) != "v" {
				t.Errorf("subscriber %d got %q", i, msg.Value)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive the message", i)
		}
	}
}

func TestInMemory_TopicsIsolated(t *testing.T) {
	b := NewInMemory()
	defer b.Close()
	ctx := context.Background()

	ch, _ := b.Subscribe(ctx, "topic-a", "g")
	if err := b.Publish(ctx, "topic-b", "k", []byte("v")); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	select {
	case msg := <-ch:
		t.Errorf("subscriber received a message from another topic: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInMemory_OffsetsIncrease(t *testing.T) {
	b := NewInMemory()
	defer b.Close()
	ctx := context.Background()

	ch, _ := b.Subscribe(ctx, "topic", "g")
	for i := 0; i < 3; i++ {
		if err := b.Publish(ctx, "topic", "k", []byte("v")); err != nil {
			t.Fatalf("Publish() error: %v", err)
		}
	}

	for want := int64(0); want < 3; want++ {
		msg := <-ch
		if msg.Offset != want {
			t.Errorf("expected offset %d, got %d", want, msg.Offset)
		}
	}
}

func TestInMemory_Close(t *testing.T) {
	b := NewInMemory()
	ctx := context.Background()

	ch, _ := b.Subscribe(ctx, "topic", "g")
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	if _, ok := <-ch; ok {
		t.Error("subscriber channel should be closed")
	}
	if err := b.Publish(ctx, "topic", "k", []byte("v")); err == nil {
		t.Error("expected error publishing to a closed broker")
	}
	if _, err := b.Subscribe(ctx, "topic", "g"); err == nil {
		t.Error("expected error subscribing to a closed broker")
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() should be a no-op, got %v", err)
	}
}

func TestInMemory_CloseDuringPublish(t *testing.T) {
	b := NewInMemory()
	ctx := context.Background()

	ch, err := b.Subscribe(ctx, "topic", "g")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}
	go func() {
		for range ch {
		}
	}()

	// Hammer Publish while Close runs concurrently. A send after a close
	// would panic and fail the test.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if err := b.Publish(ctx, "topic", "k", []byte("v")); err != nil {
				return
			}
		}
	}()

	time.Sleep(time.Millisecond)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop after Close")
	}
}
