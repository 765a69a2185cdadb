package broadcaster

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"kestrel/infra/outbox"
)

const (
	defaultInterval = 250 * time.Millisecond

	// maxAttempts bounds redelivery. A record that fails this many
	// times stays FAILED in the outbox for an operator to inspect.
	maxAttempts = 5
)

// Broadcaster drains the outbox to Kafka. Delivery is at-least-once:
// a crash between send and ack republishes the record on restart, and
// consumers deduplicate on the sequence number each event carries.
type Broadcaster struct {
	outbox   *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	log      *zap.SugaredLogger
}

func New(ob *outbox.Outbox, producer sarama.SyncProducer, topic string, interval time.Duration, log *zap.SugaredLogger) *Broadcaster {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Broadcaster{
		outbox:   ob,
		producer: producer,
		topic:    topic,
		interval: interval,
		log:      log,
	}
}

// NewProducer builds the synchronous producer the broadcaster needs:
// acks from all replicas, successes reported on the return path.
func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	return sarama.NewSyncProducer(brokers, cfg)
}

// Start drains on a ticker until ctx is done.
func (b *Broadcaster) Start(ctx context.Context) {
	b.log.Infow("broadcaster started", "topic", b.topic, "interval", b.interval)

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.drainOnce()
			}
		}
	}()
}

// drainOnce walks the outbox one state at a time.
//
// ACKED records are deletes interrupted by a crash; SENT records are
// sends whose ack was never recorded, republished on the at-least-once
// contract. Then FAILED records get their retries and NEW records go
// out for the first time. Scan callbacks always return nil so one bad
// record never stalls the ones behind it.
func (b *Broadcaster) drainOnce() {
	_ = b.outbox.ScanByState(outbox.StateAcked, func(seq uint64, _ outbox.Record) error {
		if err := b.outbox.Delete(seq); err != nil {
			b.log.Errorw("outbox delete failed", "seq", seq, "error", err)
		}
		return nil
	})

	for _, state := range []outbox.State{outbox.StateSent, outbox.StateFailed, outbox.StateNew} {
		_ = b.outbox.ScanByState(state, func(seq uint64, rec outbox.Record) error {
			b.deliver(seq, rec)
			return nil
		})
	}
}

func (b *Broadcaster) deliver(seq uint64, rec outbox.Record) {
	if rec.Retries >= maxAttempts {
		return
	}

	// mark SENT before the send, so a crash in between is visible
	if err := b.outbox.UpdateState(seq, outbox.StateSent, rec.Retries); err != nil {
		b.log.Errorw("outbox mark sent failed", "seq", seq, "error", err)
		return
	}

	partition, offset, err := b.producer.SendMessage(&sarama.ProducerMessage{
		Topic: b.topic,
		Value: sarama.ByteEncoder(rec.Payload),
	})
	if err != nil {
		retries := rec.Retries + 1
		if uerr := b.outbox.UpdateState(seq, outbox.StateFailed, retries); uerr != nil {
			b.log.Errorw("outbox mark failed failed", "seq", seq, "error", uerr)
		}
		if retries >= maxAttempts {
			b.log.Errorw("event delivery abandoned", "seq", seq, "retries", retries, "error", err)
		} else {
			b.log.Warnw("event delivery failed", "seq", seq, "retries", retries, "error", err)
		}
		return
	}

	if err := b.outbox.UpdateState(seq, outbox.StateAcked, rec.Retries); err != nil {
		b.log.Errorw("outbox mark acked failed", "seq", seq, "error", err)
		return
	}
	if err := b.outbox.Delete(seq); err != nil {
		b.log.Errorw("outbox delete failed", "seq", seq, "error", err)
		return
	}

	b.log.Debugw("event delivered", "seq", seq, "partition", partition, "offset", offset)
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
