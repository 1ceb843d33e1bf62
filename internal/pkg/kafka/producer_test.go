package kafka

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventProducerPublish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	mockProducer := mocks.NewSyncProducer(t, cfg)

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "post-1" {
			return errors.New("unexpected partition key " + string(key))
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var evt model.SocialEvent
		if err = json.Unmarshal(value, &evt); err != nil {
			return err
		}
		if evt.Type != model.EventReaction || evt.Result != "added" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewEventProducer(mockProducer, "social-events")
	evt := &model.SocialEvent{Type: model.EventReaction, ActorID: "u1", TargetID: "post-1", Result: "added"}
	require.NoError(t, p.Publish(context.Background(), evt))
	assert.False(t, evt.OccurredAt.IsZero())
	require.NoError(t, p.Close())
}

func TestEventProducerPublishError(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	mockProducer := mocks.NewSyncProducer(t, cfg)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewEventProducer(mockProducer, "social-events")
	err := p.Publish(context.Background(), &model.SocialEvent{Type: model.EventFollow, TargetID: "u2"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
