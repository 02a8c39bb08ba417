package broker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// subscriberBuffer bounds each subscription channel. Publishing blocks when
// a subscriber falls this far behind.
const subscriberBuffer = 100

// InMemory is a process-local Broker used in local mode and in tests.
// Every subscriber of a topic receives every message published to it.
type InMemory struct {
	mu     sync.RWMutex
	subs   map[string][]chan Message
	offset map[string]int64
	closed bool

	// publishers tracks in-flight Publish calls. Close waits for them
	// before closing subscriber channels, so a send never races a close.
	publishers sync.WaitGroup
}

// NewInMemory creates an in-memory broker.
func NewInMemory() *InMemory {
	return &InMemory{
		subs:   make(map[string][]chan Message),
		offset: make(map[string]int64),
	}
}

// Publish delivers the message to all current subscribers of the topic.
func (b *InMemory) Publish(ctx context.Context, topic string, key string, value []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("broker is closed")
	}
	msg := Message{
		Topic:     topic,
		Key:       key,
		Value:     value,
		Offset:    b.offset[topic],
		Timestamp: time.Now().UnixMilli(),
	}
	b.offset[topic]++
	subs := make([]chan Message, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.publishers.Add(1)
	b.mu.Unlock()
	defer b.publishers.Done()

	for _, ch := range subs {
		select {
		case ch <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe registers a new subscriber channel for the topic. The groupID
// is ignored: the in-memory broker broadcasts to every subscriber.
func (b *InMemory) Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	ch := make(chan Message, subscriberBuffer)
	b.subs[topic] = append(b.subs[topic], ch)
	return ch, nil
}

// Close shuts down the broker and closes all subscriber channels. It waits
// for in-flight publishes to finish first; no new publish can start once
// closed is set.
func (b *InMemory) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true

	var channels []chan Message
	for _, subs := range b.subs {
		channels = append(channels, subs...)
	}
	b.subs = make(map[string][]chan Message)
	b.mu.Unlock()

	b.publishers.Wait()
	for _, ch := range channels {
		close(ch)
	}
	return nil
}
