package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublish_MarshalError(t *testing.T) {
	p := NewProducer(zap.NewNop(), []string{"localhost:9092"})
	defer p.Close()

	err := p.Publish(context.Background(), "searches", "key", make(chan int))
	assert.ErrorContains(t, err, "failed to marshal payload")
}

func TestPublishWithRetry(t *testing.T) {
	p := NewProducer(zap.NewNop(), []string{"localhost:9092"})
	defer p.Close()

	t.Run("single attempt when retries not positive", func(t *testing.T) {
		err := p.PublishWithRetry(context.Background(), "searches", "key", make(chan int), 0)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed after 1 retries")
		assert.ErrorContains(t, err, "failed to marshal payload")
	})

	t.Run("stops backing off when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.PublishWithRetry(ctx, "searches", "key", make(chan int), 5)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryingPublisher_Publish(t *testing.T) {
	p := NewProducer(zap.NewNop(), []string{"localhost:9092"})
	defer p.Close()

	publisher := p.WithRetries(1)
	assert.Equal(t, 1, publisher.maxRetries)

	err := publisher.Publish(context.Background(), "searches", "key", make(chan int))
	assert.ErrorContains(t, err, "failed after 1 retries")
}
