package broker

import (
	"context"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"

	"lintwell/src/logger"
)

// Kafka is a Kafka/Redpanda-backed Broker built on franz-go. One producer
// client is shared; each Subscribe call creates a dedicated consumer client
// for its topic and group.
type Kafka struct {
	producer  *kgo.Client
	brokers   []string
	log       logger.Logger
	mu        sync.Mutex
	consumers map[string]*kgo.Client // topic:groupID -> consumer
	closed    bool
}

// NewKafka connects a producer to the given seed brokers.
func NewKafka(brokers []string, log logger.Logger) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker address is required")
	}
	if log == nil {
		log = logger.NewSilentLogger()
	}

	producer, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %w", err)
	}

	return &Kafka{
		producer:  producer,
		brokers:   brokers,
		log:       log,
		consumers: make(map[string]*kgo.Client),
	}, nil
}

// Publish produces one record synchronously.
func (k *Kafka) Publish(ctx context.Context, topic string, key string, value []byte) error {
	k.mu.Lock()
	closed := k.closed
	k.mu.Unlock()
	if closed {
		return fmt.Errorf("broker is closed")
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := k.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to %s: %w", topic, err)
	}
	return nil
}

// Subscribe starts a consumer for the topic within the given group and
// returns its message channel. The channel closes when ctx is cancelled or
// the broker is closed.
func (k *Kafka) Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	key := topic + ":" + groupID
	if _, exists := k.consumers[key]; exists {
		return nil, fmt.Errorf("already subscribed to %s in group %s", topic, groupID)
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(k.brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for %s: %w", topic, err)
	}
	k.consumers[key] = consumer

	msgs := make(chan Message, subscriberBuffer)
	go k.consume(ctx, consumer, msgs)
	return msgs, nil
}

// consume polls the consumer until the context ends or the client closes.
func (k *Kafka) consume(ctx context.Context, consumer *kgo.Client, msgs chan<- Message) {
	defer close(msgs)

	for {
		if ctx.Err() != nil {
			return
		}

		fetches := consumer.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return
		}
		for _, err := range fetches.Errors() {
			k.log.Error("fetch error on %s: %v", err.Topic, err.Err)
		}

		for _, record := range fetches.Records() {
			msg := Message{
				Topic:     record.Topic,
				Key:       string(record.Key),
				Value:     record.Value,
				Offset:    record.Offset,
				Partition: record.Partition,
				Timestamp: record.Timestamp.UnixMilli(),
			}
			select {
			case msgs <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close shuts down the producer and every consumer.
func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true

	for _, consumer := range k.consumers {
		consumer.Close()
	}
	k.consumers = make(map[string]*kgo.Client)
	k.producer.Close()
	return nil
}
