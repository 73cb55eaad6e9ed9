package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Producer publishes JSON messages to a Kafka topic.
type Producer interface {
	SendMessage(message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

// NewProducer configures a writer for the given topic. When the brokers are
// unreachable it degrades to a no-op producer so booking operations never
// depend on Kafka being up.
func NewProducer(brokers, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers)
	if err != nil {
		logrus.Warnf("⚠️ Kafka connection failed: %v, using no-op producer", err)
		return &noopProducer{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.Infof("Could not create topic (might already exist): %v", err)
	}

	logrus.Infof("✅ Kafka producer connected at %s, topic %q", brokers, topic)
	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) SendMessage(message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logrus.Errorf("Failed to write message to Kafka: %v", err)
		return err
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

type noopProducer struct{}

func (*noopProducer) SendMessage(interface{}) error { return nil }
func (*noopProducer) Close() error                  { return nil }

// NewReader builds a consumer-group reader for the given topic.
func NewReader(brokers, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{brokers},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
