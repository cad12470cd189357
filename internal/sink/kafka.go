// Package sink publishes scored texts to external systems.
package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// KafkaConfig holds the producer settings.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string        // Defaults to "tcscore"
	Version  string        // Kafka protocol version (default "2.8.0")
	Timeout  time.Duration // Network timeout (default 10s)
}

// KafkaSink sends one JSON message per scored text, keyed by the text hash so
// repeated scores of the same text land on the same partition.
type KafkaSink struct {
	topic    string
	producer sarama.SyncProducer

	mu     sync.Mutex
	closed bool
}

var _ contract.ResultSink = (*KafkaSink)(nil)

// kafkaMessage is the wire form of a scored text.
type kafkaMessage struct {
	schema.ScoredText
	ScoredAt time.Time `json:"scored_at"`
}

// NewKafkaSink connects a synchronous producer to the brokers.
func NewKafkaSink(cfg KafkaConfig) (*KafkaSink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers cannot be empty")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic cannot be empty")
	}
	saramaCfg, err := newSaramaConfig(cfg)
	if err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaSinkWithProducer(producer, cfg.Topic), nil
}

// NewKafkaSinkWithProducer wraps an existing producer.
func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{topic: topic, producer: producer}
}

func newSaramaConfig(cfg KafkaConfig) (*sarama.Config, error) {
	if cfg.ClientID == "" {
		cfg.ClientID = "tcscore"
	}
	if cfg.Version == "" {
		cfg.Version = "2.8.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	version, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid kafka version: %w", err)
	}

	sc := sarama.NewConfig()
	sc.Version = version
	sc.ClientID = cfg.ClientID
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.Retry.Max = 3
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Net.DialTimeout = cfg.Timeout
	sc.Net.ReadTimeout = cfg.Timeout
	sc.Net.WriteTimeout = cfg.Timeout
	return sc, nil
}

// Publish sends every result as one batch.
func (k *KafkaSink) Publish(ctx context.Context, results []schema.ScoredText) error {
	if len(results) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return errors.New("kafka sink is closed")
	}

	now := time.Now().UTC()
	msgs := make([]*sarama.ProducerMessage, 0, len(results))
	for _, r := range results {
		data, err := json.Marshal(kafkaMessage{ScoredText: r, ScoredAt: now})
		if err != nil {
			return fmt.Errorf("failed to marshal result %d: %w", r.Index, err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: k.topic,
			Key:   sarama.StringEncoder(r.Hash),
			Value: sarama.ByteEncoder(data),
			Headers: []sarama.RecordHeader{
				{Key: []byte("complexity_level"), Value: []byte(r.Level)},
			},
			Timestamp: now,
		})
	}

	if err := k.producer.SendMessages(msgs); err != nil {
		var perrs sarama.ProducerErrors
		if errors.As(err, &perrs) {
			return fmt.Errorf("failed to publish %d of %d results to kafka: %w", len(perrs), len(msgs), perrs[0].Err)
		}
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}

// Close flushes and closes the producer. Closing twice is a no-op.
func (k *KafkaSink) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil
	}
	k.closed = true
	return k.producer.Close()
}
