package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/snappy-loop/blogart/internal/models"
)

// messageWriter is the subset of *kafka.Writer used by Producer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer announces written artwork on a Kafka topic
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Async:                  false,
	}

	log.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("Kafka producer initialized")

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishArtwork publishes an artwork message keyed by artwork ID
func (p *Producer) PublishArtwork(ctx context.Context, a *models.Artwork) error {
	msg, err := artworkMessage(a)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write artwork message to kafka: %w", err)
	}

	log.Info().
		Str("artwork_id", a.ID.String()).
		Str("stem", a.Stem).
		Str("topic", p.topic).
		Msg("Artwork message published to Kafka")

	return nil
}

func artworkMessage(a *models.Artwork) (kafka.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal artwork message: %w", err)
	}
	return kafka.Message{
		Key:   []byte(a.ID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(a.Kind)},
		},
	}, nil
}

// Close closes the producer
func (p *Producer) Close() error {
	log.Info().Msg("Closing Kafka producer")
	return p.writer.Close()
}
