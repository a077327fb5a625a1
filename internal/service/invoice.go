package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospitalsupply/supplyrecon/internal/api/dto"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/reconcile"
	"github.com/samber/lo"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	GetInvoiceFile(ctx context.Context, id uuid.UUID) (*dto.InvoiceFileResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)

	// SubmitLineItems records the scanned line items of an invoice and links
	// it to the most recent pending order when the items match exactly
	SubmitLineItems(ctx context.Context, id uuid.UUID, req *dto.SubmitLineItemsRequest) (*dto.ReconciliationResponse, error)
}

type invoiceService struct {
	ServiceParams
	applier *reconcile.Applier
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		applier: reconcile.NewApplier(
			params.DB,
			params.InvoiceRepo,
			params.OrderRepo,
			params.LineItemRepo,
			params.Logger,
		),
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(s.Config.Upload); err != nil {
		return nil, err
	}

	inv := req.ToInvoice()

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		n, err := s.InvoiceRepo.Create(txCtx, inv)
		return reconcile.ExpectRows(stepCreateInvoice, "invoices", 1, n, err)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice created",
		"invoice_id", inv.ID,
		"file_name", inv.FileName,
		"size_bytes", len(inv.FileData),
	)

	// The invoice is committed; a failed notification is only logged.
	if err := s.WorkflowPublisher.PublishInvoiceCreated(ctx, inv); err != nil {
		s.Logger.Warnw("invoice check notification not queued",
			"invoice_id", inv.ID,
			"error", err,
		)
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoiceFile(ctx context.Context, id uuid.UUID) (*dto.InvoiceFileResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceFileResponse{
		FileName:    inv.FileName,
		ContentType: inv.ContentType,
		Data:        inv.FileData,
	}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	summaries, err := s.InvoiceRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse[*invoice.Summary](summaries), nil
}

func (s *invoiceService) SubmitLineItems(ctx context.Context, id uuid.UUID, req *dto.SubmitLineItemsRequest) (*dto.ReconciliationResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pending, err := s.OrderRepo.GetPendingOrders(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.Decide(inv, pending, req.LineItems)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("reconciliation decided",
		"invoice_id", inv.ID,
		"candidate_order_id", plan.CandidateOrderID,
		"discrepancy", plan.Discrepancy,
	)

	result, err := s.applier.Apply(ctx, plan)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReconciliationResponse{
		Invoice:     dto.NewInvoiceResponse(result.Invoice),
		Linked:      result.Invoice.Linked,
		Discrepancy: result.Discrepancy,
		LineItems:   plan.LineItems,
	}
	if result.Order != nil {
		resp.OrderID = lo.ToPtr(result.Order.ID)
	}
	return resp, nil
}
