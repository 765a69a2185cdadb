package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Message is one fetched record plus the coordinates needed to commit
// it after processing.
type Message struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
}

// Consumer reads one topic through a consumer group. Offsets are
// committed explicitly, after the caller has applied the message, so
// a crash replays uncommitted work instead of dropping it.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10 << 20,
			MaxWait:  250 * time.Millisecond,
		}),
	}
}

// Fetch blocks until a message arrives or ctx is done.
func (c *Consumer) Fetch(ctx context.Context) (Message, error) {
	m, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Key:       m.Key,
		Value:     m.Value,
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
	}, nil
}

// Commit marks the message consumed for the group.
func (c *Consumer) Commit(ctx context.Context, m Message) error {
	return c.reader.CommitMessages(ctx, kafka.Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
	})
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
