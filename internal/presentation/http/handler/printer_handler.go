package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/application/service"
	"github.com/sangkips/invoice-desk/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer status and receipt previews.
type PrinterHandler struct {
	printerService *service.PrinterService
	draftService   *service.DraftService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, draftService *service.DraftService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, draftService: draftService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// Preview renders the current draft as a PDF invoice. With ?format=json the
// receipt is returned as data instead.
func (h *PrinterHandler) Preview(c *gin.Context) {
	view := h.draftService.Snapshot()
	data, receipt, err := h.printerService.Preview(view.Draft)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "json" {
		response.OK(c, "Preview generated", receipt)
		return
	}
	response.PDF(c, receipt.BillNumber+".pdf", data)
}
