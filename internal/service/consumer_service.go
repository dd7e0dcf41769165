package service

import (
	"context"
	"encoding/json"
	"log"

	"faq-management-be/internal/pkg/logger"
	"faq-management-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains FAQ audit events off the in-process bus and
// writes them to the isolated audit log file, keeping write-history out of
// the request path.
type auditConsumerService struct {
	pubSub   *gochannel.GoChannel
	auditLog logger.ILogger
}

func NewAuditConsumerService(pubSub *gochannel.GoChannel, auditLog logger.ILogger) IConsumerService {
	return &auditConsumerService{
		pubSub:   pubSub,
		auditLog: auditLog,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *auditConsumerService) processMessage(msg *message.Message) {
	var event events.AuditEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{
		"actor":       event.Actor,
		"occurred_at": event.OccurredAt,
	}
	for k, v := range event.Details {
		details[k] = v
	}
	cs.auditLog.Info("audit", event.Type, details)

	msg.Ack()
}
