package dto

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/domain/invoice"
	"github.com/hospitalsupply/supplyrecon/internal/domain/lineitem"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/types"
	"github.com/hospitalsupply/supplyrecon/internal/validator"
)

// CreateInvoiceRequest is an uploaded invoice document
type CreateInvoiceRequest struct {
	FileName    string `validate:"required,max=255"`
	ContentType string `validate:"required"`
	Data        []byte
}

// Validate rejects empty, oversized and non-allowed documents. The declared
// content type must be allowed and the bytes must sniff as that type.
func (r *CreateInvoiceRequest) Validate(cfg config.UploadConfig) error {
	if len(r.Data) == 0 {
		return ierr.NewError("no file was uploaded").
			WithHint("No file was uploaded").
			Mark(ierr.ErrValidation)
	}

	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if int64(len(r.Data)) > cfg.MaxFileSizeBytes {
		return ierr.NewError("file too large").
			WithHintf("File must be at most %d bytes", cfg.MaxFileSizeBytes).
			WithReportableDetails(map[string]any{
				"size_bytes":     len(r.Data),
				"max_size_bytes": cfg.MaxFileSizeBytes,
			}).
			Mark(ierr.ErrValidation)
	}

	if !slices.Contains(cfg.AllowedContentTypes, r.ContentType) {
		return ierr.NewError("unsupported content type").
			WithHint("File must be pdf").
			WithReportableDetails(map[string]any{
				"content_type": r.ContentType,
				"allowed":      cfg.AllowedContentTypes,
			}).
			Mark(ierr.ErrValidation)
	}

	kind, err := filetype.Match(r.Data)
	if err != nil || kind.MIME.Value != r.ContentType {
		return ierr.NewError("file content does not match content type").
			WithHint("File must be pdf").
			WithReportableDetails(map[string]any{
				"content_type":  r.ContentType,
				"detected_type": kind.MIME.Value,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToInvoice builds a fresh, unscanned invoice
func (r *CreateInvoiceRequest) ToInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:          types.NewEntityID(),
		FileName:    r.FileName,
		FileData:    r.Data,
		ContentType: r.ContentType,
		DateCreated: time.Now().UTC().Truncate(time.Microsecond),
		Scanned:     false,
		Linked:      false,
	}
}

// SubmitLineItemsRequest carries the line items extracted from a scanned invoice
type SubmitLineItemsRequest struct {
	LineItems []lineitem.Input `json:"line_items" validate:"required,min=1,dive"`
}

func (r *SubmitLineItemsRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return lineitem.ValidateInputs(r.LineItems)
}

// InvoiceResponse is an invoice without its document bytes
type InvoiceResponse struct {
	*invoice.Invoice
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}

// InvoiceFileResponse is the stored document
type InvoiceFileResponse struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ListInvoicesResponse lists invoice summaries
type ListInvoicesResponse = ListResponse[*invoice.Summary]

// ReconciliationResponse is the outcome of a line item submission
type ReconciliationResponse struct {
	Invoice     *InvoiceResponse     `json:"invoice"`
	OrderID     *uuid.UUID           `json:"order_id,omitempty"`
	Linked      bool                 `json:"linked"`
	Discrepancy bool                 `json:"discrepancy"`
	LineItems   []*lineitem.LineItem `json:"line_items"`
}
