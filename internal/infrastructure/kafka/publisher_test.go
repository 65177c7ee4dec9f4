package kafka_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/kafka"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

func sampleEvent() ledger.Event {
	return ledger.Event{
		ID:         "evt-1",
		Type:       ledger.EventDispatchCreated,
		OccurredAt: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		MovementID: "mov-1",
		Store:      entity.StoreBoba,
		Status:     entity.MovementStatusOut,
		UserID:     "u-1",
		Lines:      []ledger.EventLine{{ItemID: "i1", Quantity: 20}},
	}
}

func TestPublisher_PublicaJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "wegesa.ledger" {
			return errors.New("tópico inesperado " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "mov-1" {
			return errors.New("clave inesperada " + string(key))
		}
		if len(msg.Headers) != 3 || !bytes.Equal(msg.Headers[0].Value, []byte("DispatchCreated")) {
			return errors.New("headers inesperados")
		}
		value, _ := msg.Value.Encode()
		var evt ledger.Event
		if err := json.Unmarshal(value, &evt); err != nil {
			return err
		}
		if evt.Lines[0].Quantity != 20 {
			return errors.New("líneas inesperadas")
		}
		return nil
	})

	p := kafka.NewPublisherWithProducer(producer, "wegesa.ledger", logger.Nop())
	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.NoError(t, p.Close())
}

func TestPublisher_ErrorDelBroker(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	p := kafka.NewPublisherWithProducer(producer, "wegesa.ledger", nil)
	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, p.Close())
}

func TestPublisher_ContextoCancelado(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := kafka.NewPublisherWithProducer(producer, "wegesa.ledger", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, sampleEvent()), context.Canceled)
	require.NoError(t, p.Close())
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := kafka.NewLogPublisher(logger.New(logger.Config{Env: "test", Level: "info", Output: &buf}))

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), `"event_type":"DispatchCreated"`)
	assert.Contains(t, buf.String(), `"movement_id":"mov-1"`)
}
