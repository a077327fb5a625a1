package workflow

import (
	"github.com/hospitalsupply/supplyrecon/internal/cache"
	"github.com/hospitalsupply/supplyrecon/internal/httpclient"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub/memory"
	"go.uber.org/fx"
)

// Module provides the notifier: pubsub, publisher, handler and trigger
var Module = fx.Options(
	fx.Provide(
		memory.NewPubSub,
		httpclient.NewDefaultClient,
		cache.NewInMemoryCache,
		NewTrigger,
		NewPublisher,
		NewHandler,
	),
)
