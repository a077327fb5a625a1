package workflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub"
	"github.com/hospitalsupply/supplyrecon/internal/types"
)

// Publisher hands invoice events to the message router
type Publisher interface {
	PublishInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error
	Close() error
}

type publisher struct {
	pubSub pubsub.PubSub
	config *config.Workflow
	logger *logger.Logger
}

func NewPublisher(pubSub pubsub.PubSub, cfg *config.Configuration, logger *logger.Logger) Publisher {
	return &publisher{
		pubSub: pubSub,
		config: &cfg.Workflow,
		logger: logger,
	}
}

func (p *publisher) PublishInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error {
	if !p.config.Enabled {
		p.logger.Debugw("workflow disabled, skipping invoice event", "invoice_id", inv.ID)
		return nil
	}

	event := &Event{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MESSAGE),
		EventName: EventInvoiceCreated,
		InvoiceID: inv.ID,
		FileName:  inv.FileName,
		RequestID: types.GetRequestID(ctx),
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_name", event.EventName)
	msg.Metadata.Set("invoice_id", inv.ID.String())

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish workflow event",
			"error", err,
			"event_id", event.ID,
			"invoice_id", inv.ID,
		)
		return err
	}

	p.logger.Infow("published workflow event",
		"event_id", event.ID,
		"event_name", event.EventName,
		"invoice_id", inv.ID,
	)
	return nil
}

func (p *publisher) Close() error {
	return p.pubSub.Close()
}
