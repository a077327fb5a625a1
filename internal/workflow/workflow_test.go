package workflow_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/cache"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub"
	"github.com/hospitalsupply/supplyrecon/internal/pubsub/memory"
	pubsubRouter "github.com/hospitalsupply/supplyrecon/internal/pubsub/router"
	"github.com/hospitalsupply/supplyrecon/internal/testutil"
	"github.com/hospitalsupply/supplyrecon/internal/workflow"
	"github.com/stretchr/testify/suite"
)

const triggerURL = "http://robot.test/api/v1/jobs/invoice-check/trigger"

type WorkflowSuite struct {
	suite.Suite
	ctx        context.Context
	cfg        *config.Configuration
	logger     *logger.Logger
	httpClient *testutil.MockHTTPClient
	cache      cache.Cache
	pubSub     pubsub.PubSub
	publisher  workflow.Publisher
	handler    workflow.Handler
}

func TestWorkflow(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.cfg.Workflow.Enabled = true
	s.cfg.Workflow.TriggerURL = triggerURL
	s.cfg.Workflow.AccessToken = "robot-token"
	s.cfg.Workflow.MaxRetries = 0
	s.cfg.Workflow.InitialInterval = time.Millisecond
	s.cfg.Workflow.MaxInterval = time.Millisecond

	s.logger = logger.NewNopLogger()
	s.httpClient = testutil.NewMockHTTPClient()
	s.cache = cache.NewInMemoryCache(s.cfg, s.logger)
	s.pubSub = memory.NewPubSub(s.logger)
	s.publisher = workflow.NewPublisher(s.pubSub, s.cfg, s.logger)

	trigger := workflow.NewTrigger(s.httpClient, s.cfg, s.logger)
	s.handler = workflow.NewHandler(s.pubSub, s.cfg, trigger, s.cache, s.logger)
}

func (s *WorkflowSuite) TearDownTest() {
	_ = s.pubSub.Close()
}

func (s *WorkflowSuite) event(invoiceID uuid.UUID) *message.Message {
	payload, err := json.Marshal(workflow.Event{
		ID:        "msg_test",
		EventName: workflow.EventInvoiceCreated,
		InvoiceID: invoiceID,
		FileName:  "invoice.pdf",
		Timestamp: time.Now().UTC(),
	})
	s.Require().NoError(err)
	msg := message.NewMessage("msg_test", payload)
	msg.SetContext(s.ctx)
	return msg
}

func (s *WorkflowSuite) respond(status int) {
	s.httpClient.RegisterResponse(triggerURL, testutil.MockResponse{
		StatusCode: status,
		Body:       []byte(`{"id":"job_1"}`),
	})
}

func (s *WorkflowSuite) TestTriggerRequest() {
	s.respond(http.StatusCreated)

	trigger := workflow.NewTrigger(s.httpClient, s.cfg, s.logger)
	s.Require().NoError(trigger.StartInvoiceCheck(s.ctx))

	requests := s.httpClient.Requests()
	s.Require().Len(requests, 1)
	s.Equal(http.MethodPost, requests[0].Method)
	s.Equal(triggerURL, requests[0].URL)
	s.Equal("Bearer robot-token", requests[0].Headers["Authorization"])
	s.Equal([]byte("{}"), requests[0].Body)
}

func (s *WorkflowSuite) TestHandlerDeliversOncePerInvoice() {
	s.respond(http.StatusOK)
	invoiceID := uuid.New()

	s.Require().NoError(workflow.ProcessMessage(s.handler, s.event(invoiceID)))
	s.Require().NoError(workflow.ProcessMessage(s.handler, s.event(invoiceID)))
	s.Len(s.httpClient.Requests(), 1)

	_, delivered := s.cache.Get(s.ctx, cache.GenerateKey(cache.PrefixWorkflowDelivery, invoiceID))
	s.True(delivered)

	s.Require().NoError(workflow.ProcessMessage(s.handler, s.event(uuid.New())))
	s.Len(s.httpClient.Requests(), 2)
}

func (s *WorkflowSuite) TestHandlerRetriesTransientFailures() {
	s.respond(http.StatusServiceUnavailable)
	invoiceID := uuid.New()

	err := workflow.ProcessMessage(s.handler, s.event(invoiceID))
	s.Error(err)

	_, delivered := s.cache.Get(s.ctx, cache.GenerateKey(cache.PrefixWorkflowDelivery, invoiceID))
	s.False(delivered)
}

func (s *WorkflowSuite) TestHandlerDropsPermanentFailures() {
	s.respond(http.StatusUnauthorized)
	invoiceID := uuid.New()

	s.NoError(workflow.ProcessMessage(s.handler, s.event(invoiceID)))

	_, delivered := s.cache.Get(s.ctx, cache.GenerateKey(cache.PrefixWorkflowDelivery, invoiceID))
	s.False(delivered)
}

func (s *WorkflowSuite) TestHandlerAcksMalformedPayload() {
	msg := message.NewMessage("bad", []byte("not json"))
	s.NoError(workflow.ProcessMessage(s.handler, msg))
	s.Empty(s.httpClient.Requests())
}

func (s *WorkflowSuite) TestPublisherSkipsWhenDisabled() {
	s.cfg.Workflow.Enabled = false
	publisher := workflow.NewPublisher(s.pubSub, s.cfg, s.logger)

	ctx, cancel := context.WithTimeout(s.ctx, 100*time.Millisecond)
	defer cancel()
	messages, err := s.pubSub.Subscribe(ctx, s.cfg.Workflow.Topic)
	s.Require().NoError(err)

	s.Require().NoError(publisher.PublishInvoiceCreated(s.ctx, &invoice.Invoice{ID: uuid.New()}))

	select {
	case msg, ok := <-messages:
		if ok {
			s.Failf("unexpected message", "uuid %s", msg.UUID)
		}
	case <-ctx.Done():
	}
}

func (s *WorkflowSuite) TestRouterDeliversPublishedInvoice() {
	s.respond(http.StatusOK)

	router, err := pubsubRouter.NewRouter(s.cfg, s.logger)
	s.Require().NoError(err)
	s.handler.RegisterHandler(router)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go func() {
		_ = router.Run(ctx)
	}()
	defer router.Close()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		s.FailNow("router did not start")
	}

	inv := &invoice.Invoice{ID: uuid.New(), FileName: "invoice.pdf"}
	s.Require().NoError(s.publisher.PublishInvoiceCreated(s.ctx, inv))

	s.Eventually(func() bool {
		return len(s.httpClient.Requests()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	s.Eventually(func() bool {
		_, delivered := s.cache.Get(s.ctx, cache.GenerateKey(cache.PrefixWorkflowDelivery, inv.ID))
		return delivered
	}, 5*time.Second, 10*time.Millisecond)
}
