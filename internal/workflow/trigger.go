package workflow

import (
	"context"
	"net/http"

	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/httpclient"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
)

// Trigger starts the external invoice check job
type Trigger interface {
	StartInvoiceCheck(ctx context.Context) error
}

// robotTrigger calls the automation API trigger endpoint with a bearer token
// and an empty JSON body
type robotTrigger struct {
	client httpclient.Client
	config *config.Workflow
	logger *logger.Logger
}

func NewTrigger(client httpclient.Client, cfg *config.Configuration, logger *logger.Logger) Trigger {
	return &robotTrigger{
		client: client,
		config: &cfg.Workflow,
		logger: logger,
	}
}

func (t *robotTrigger) StartInvoiceCheck(ctx context.Context) error {
	headers := map[string]string{}
	if t.config.AccessToken != "" {
		headers["Authorization"] = "Bearer " + t.config.AccessToken
	}

	resp, err := t.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     t.config.TriggerURL,
		Headers: headers,
		Body:    []byte("{}"),
	})
	if err != nil {
		return err
	}

	t.logger.Debugw("invoice check triggered",
		"status_code", resp.StatusCode,
		"response", string(resp.Body),
	)
	return nil
}
