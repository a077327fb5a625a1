package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hospitalsupply/supplyrecon/internal/api/dto"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	upload         config.UploadConfig
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, cfg *config.Configuration, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		upload:         cfg.Upload,
		logger:         logger,
	}
}

// CreateInvoice godoc
// @Summary Upload an invoice
// @Description Upload an invoice document. The invoice starts unscanned and unlinked.
// @Tags Invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice PDF"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("No file was uploaded").
			Mark(ierr.ErrValidation))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Uploaded file could not be read").
			Mark(ierr.ErrValidation))
		return
	}
	defer f.Close()

	// one byte past the limit is enough for the request to be rejected
	data, err := io.ReadAll(io.LimitReader(f, h.upload.MaxFileSizeBytes+1))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Uploaded file could not be read").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.CreateInvoice(c.Request.Context(), &dto.CreateInvoiceRequest{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetInvoice godoc
// @Summary Get an invoice
// @Description Get an invoice without its document bytes
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoiceFile godoc
// @Summary Download an invoice document
// @Tags Invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} application/pdf
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/file [get]
func (h *InvoiceHandler) GetInvoiceFile(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	file, err := h.invoiceService.GetInvoiceFile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// ListInvoices godoc
// @Summary List invoices
// @Description List invoice summaries, newest first
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	resp, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitLineItems godoc
// @Summary Submit scanned invoice line items
// @Description Records the line items read from the invoice and links it to the most recent pending order when they match exactly
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.SubmitLineItemsRequest true "Scanned line items"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/line_items [put]
func (h *InvoiceHandler) SubmitLineItems(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.SubmitLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debugw("failed to bind line items", "error", err, "invoice_id", id)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.SubmitLineItems(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
