package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"grocery/internal/domain/entity"
	"grocery/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	"github.com/pkg/errors"
)

// googleFeed implements the change feed on a Google Pub/Sub subscription
// carrying product-insert events. Pub/Sub gives the at-least-once,
// unordered delivery the engine is specified against.
type googleFeed struct {
	client     *pubsub.Client
	subscriber *pubsub.Subscriber
	logger     *slog.Logger
}

// NewGoogleFeed creates a change feed backed by a Google Pub/Sub subscription.
func NewGoogleFeed(ctx context.Context, projectID, subscriptionID string, logger *slog.Logger) (service.ChangeFeed, func() error, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	logger.Info("Google Pub/Sub change feed initialized",
		slog.String("project_id", projectID),
		slog.String("subscription_id", subscriptionID),
	)

	feed := &googleFeed{
		client:     client,
		subscriber: client.Subscriber(subscriptionID),
		logger:     logger,
	}

	return feed, client.Close, nil
}

// Subscribe starts receiving insert events and decoding them into products.
// Messages that do not decode are acked and dropped; redelivery of valid
// messages is handled downstream by the notification generator's dedup.
func (f *googleFeed) Subscribe(ctx context.Context, onInsert func(entity.Product)) (service.UnsubscribeFunc, error) {
	receiveCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		err := f.subscriber.Receive(receiveCtx, func(_ context.Context, msg *pubsub.Message) {
			var product entity.Product
			if err := json.Unmarshal(msg.Data, &product); err != nil {
				f.logger.Error("[Feed] Dropping undecodable insert event",
					slog.String("message_id", msg.ID),
					slog.Any("error", err),
				)
				msg.Ack()

				return
			}

			onInsert(product)
			msg.Ack()
		})
		if err != nil && receiveCtx.Err() == nil {
			f.logger.Error("[Feed] Receive terminated", slog.Any("error", err))
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}

	return unsubscribe, nil
}
