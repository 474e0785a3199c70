package service

import (
	"context"
	"encoding/json"

	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/pkg/logger"
	"qa-agent-be/pkg/events"
	pktNats "qa-agent-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService bridges in-process ingestion events onto the NATS bus so
// external systems can react without coupling to the request path.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishDocumentIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal message", map[string]interface{}{"error": err})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "Document ingested", map[string]interface{}{
		"source": payload.Source,
		"chunks": payload.Chunks,
	})

	evt := events.NewDocumentIngestedEvent(payload.Source, payload.Chunks)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		// The external bus is auxiliary. Ack either way; losing a
		// notification must not replay ingestion side effects.
		cs.logger.Warn("consumer", "Failed to publish DOCUMENT_INGESTED event", map[string]interface{}{"error": err})
	}

	msg.Ack()
}
