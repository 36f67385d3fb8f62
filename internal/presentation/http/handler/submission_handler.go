package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/application/service"
	"github.com/sangkips/invoice-desk/internal/presentation/http/dto/response"
)

// SubmissionHandler handles saving the draft to the invoice endpoint
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit validates and saves the draft. A save whose receipt failed to
// print is still reported as a success, with the print warning attached.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	result, err := h.submissionService.Submit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	message := result.Message
	if result.PrintWarning != "" {
		message += " (receipt printing failed)"
	}
	response.OK(c, message, result)
}
