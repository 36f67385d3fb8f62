package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/application/service"
	"github.com/sangkips/invoice-desk/internal/presentation/http/dto/request"
	"github.com/sangkips/invoice-desk/internal/presentation/http/dto/response"
)

// DraftHandler handles edits to the operator's invoice draft
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// StartSession handles opening a fresh draft. The staff id may come from the
// body or from the staffId query parameter.
func (h *DraftHandler) StartSession(c *gin.Context) {
	var req request.StartSessionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	view, err := h.draftService.StartSession(c.Request.Context(), req.StaffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Session started", view)
}

// Get handles reading the current draft and its totals
func (h *DraftHandler) Get(c *gin.Context) {
	response.OK(c, "Draft retrieved successfully", h.draftService.Snapshot())
}

// UpdateHeader handles customer, mobile, note and date edits
func (h *DraftHandler) UpdateHeader(c *gin.Context) {
	var req request.UpdateHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.draftService.UpdateHeader(service.HeaderInput{
		CustomerName: req.CustomerName,
		MobileNumber: req.MobileNumber,
		Note:         req.Note,
		Date:         req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft updated successfully", view)
}

// SelectStaff handles choosing the collecting staff member
func (h *DraftHandler) SelectStaff(c *gin.Context) {
	var req request.SelectStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.draftService.SelectStaff(c.Request.Context(), req.StaffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff selected successfully", view)
}

// AddItem handles appending an empty row
func (h *DraftHandler) AddItem(c *gin.Context) {
	item, view, err := h.draftService.AddItem()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Line item added", gin.H{"item": item, "draft": view})
}

// UpdateItem handles edits to one row
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	changes, err := req.ToChanges()
	if err != nil {
		response.Error(c, err)
		return
	}

	item, view, err := h.draftService.UpdateItem(c.Param("id"), changes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line item updated", gin.H{"item": item, "draft": view})
}

// SelectItem handles an item picker selection on one row
func (h *DraftHandler) SelectItem(c *gin.Context) {
	var req request.SelectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, view, err := h.draftService.SelectItem(c.Request.Context(), c.Param("id"), req.Selection)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line item updated", gin.H{"item": item, "draft": view})
}

// RemoveItem handles deleting one row
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	view, err := h.draftService.RemoveItem(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line item removed", view)
}
