package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/pkg/config"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

var (
	_ ledger.EventPublisher = (*Publisher)(nil)
	_ ledger.EventPublisher = (*LogPublisher)(nil)
)

// Publisher publica los eventos del libro en un tópico Kafka.
// La clave del mensaje es el ID del movimiento: despacho y devoluciones caen en la misma partición.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewPublisher conecta un SyncProducer idempotente con acks de todas las réplicas.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) (*Publisher, error) {
	sc := sarama.NewConfig()
	sc.ClientID = "wegesa-api"
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = cfg.Retries
	sc.Producer.Retry.Backoff = 100 * time.Millisecond
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	return NewPublisherWithProducer(producer, cfg.Topic, log), nil
}

// NewPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{producer: producer, topic: topic, log: log}
}

// Publish serializa el evento a JSON y lo envía de forma síncrona.
func (p *Publisher) Publish(ctx context.Context, evt ledger.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(evt.MovementID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(evt.Type)},
			{Key: []byte("event-id"), Value: []byte(evt.ID)},
			{Key: []byte("timestamp"), Value: []byte(evt.OccurredAt.UTC().Format(time.RFC3339))},
		},
		Timestamp: evt.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publicar %s: %w", evt.Type, err)
	}
	p.log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("event_type", string(evt.Type)).
		Str("movement_id", evt.MovementID).
		Msg("evento publicado")
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// LogPublisher escribe los eventos en el log cuando Kafka está deshabilitado.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, evt ledger.Event) error {
	p.log.Info().
		Str("event_id", evt.ID).
		Str("event_type", string(evt.Type)).
		Str("movement_id", evt.MovementID).
		Str("return_id", evt.ReturnID).
		Str("store", string(evt.Store)).
		Str("status", string(evt.Status)).
		Int("lines", len(evt.Lines)).
		Msg("evento del libro")
	return nil
}
