package workflow

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hospitalsupply/supplyrecon/internal/cache"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub"
	pubsubRouter "github.com/hospitalsupply/supplyrecon/internal/pubsub/router"
	"github.com/hospitalsupply/supplyrecon/internal/types"
)

// Handler consumes invoice events and fires the invoice check trigger
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

type handler struct {
	pubSub  pubsub.PubSub
	config  *config.Workflow
	trigger Trigger
	cache   cache.Cache
	logger  *logger.Logger
}

func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	trigger Trigger,
	c cache.Cache,
	logger *logger.Logger,
) Handler {
	return &handler{
		pubSub:  pubSub,
		config:  &cfg.Workflow,
		trigger: trigger,
		cache:   c,
		logger:  logger,
	}
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"workflow_invoice_check",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
}

// processMessage returns an error only when a retry may succeed. Everything
// else is logged and acked, the invoice is already committed either way.
func (h *handler) processMessage(msg *message.Message) error {
	ctx := msg.Context()

	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal workflow event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil
	}

	if event.RequestID != "" {
		ctx = types.SetRequestID(ctx, event.RequestID)
	}

	key := cache.GenerateKey(cache.PrefixWorkflowDelivery, event.InvoiceID)
	if _, delivered := h.cache.Get(ctx, key); delivered {
		h.logger.Debugw("invoice check already triggered",
			"invoice_id", event.InvoiceID,
			"message_uuid", msg.UUID,
		)
		return nil
	}

	if err := h.trigger.StartInvoiceCheck(ctx); err != nil {
		retry := pubsubRouter.ShouldRetry(h.logger, err)
		h.logger.Warnw("invoice check trigger failed",
			"error", err,
			"invoice_id", event.InvoiceID,
			"request_id", event.RequestID,
			"retry", retry,
		)
		if retry {
			return err
		}
		return nil
	}

	h.cache.Set(ctx, key, true, h.config.DedupeTTL)

	h.logger.Infow("invoice check triggered",
		"invoice_id", event.InvoiceID,
		"message_uuid", msg.UUID,
	)
	return nil
}
