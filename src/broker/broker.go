// Package broker defines the messaging interface between lintwell agents
// and provides in-memory and Kafka-backed implementations.
package broker

import "context"

// Broker abstracts message publishing and consumption. The in-memory
// implementation backs local mode; the Kafka implementation backs
// distributed mode where lint and analysis agents run as separate
// processes.
type Broker interface {
	// Publish sends a message to a topic with an optional key for
	// partitioning. The in-memory broker ignores the key.
	Publish(ctx context.Context, topic string, key string, value []byte) error

	// Subscribe returns a channel for consuming messages from a topic.
	// groupID is used for consumer group coordination in Kafka and is
	// ignored by the in-memory broker.
	Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error)

	// Close shuts down the broker connection gracefully.
	Close() error
}

// Message is a consumed message.
type Message struct {
	Topic     string
	Key       string
	Value     []byte
	Offset    int64
	Partition int32
	Timestamp int64
}
