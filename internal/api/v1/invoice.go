package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexonoperations/tutorbill/internal/api/dto"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/nexonoperations/tutorbill/internal/service"
)

type InvoiceHandler struct {
	service service.InvoiceService
	log     *logger.Logger
}

func NewInvoiceHandler(service service.InvoiceService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

// @Summary Get an invoice summary
// @Description Aggregate a student's unbilled sessions without rendering a document
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.InvoiceSummaryResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/invoice [get]
func (h *InvoiceHandler) GetInvoiceSummary(c *gin.Context) {
	resp, err := h.service.GetInvoiceSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Preview an invoice
// @Description Render the invoice PDF without delivering it or marking sessions as billed
// @Tags Invoices
// @Accept json
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Success 200 {file} binary
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students/{id}/invoice/preview [get]
func (h *InvoiceHandler) PreviewInvoice(c *gin.Context) {
	resp, err := h.service.PreviewInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+resp.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", resp.Document)
}

// @Summary Send an invoice
// @Description Render, archive and email the invoice, then mark the billed sessions
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.SendInvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students/{id}/invoice/send [post]
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	resp, err := h.service.SendInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Send invoices in bulk
// @Description Send one invoice per student concurrently and report a partial-success summary
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body dto.SendBulkInvoicesRequest true "Bulk send request"
// @Success 200 {object} dto.SendBulkInvoicesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices/send [post]
func (h *InvoiceHandler) SendBulkInvoices(c *gin.Context) {
	var req dto.SendBulkInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SendBulkInvoices(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
