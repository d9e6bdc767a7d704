package controller

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InquiryController struct {
	inquiries *service.InquiryService
}

func NewInquiryController(inquiries *service.InquiryService) *InquiryController {
	return &InquiryController{inquiries: inquiries}
}

type inquiryRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	University string `json:"university"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

// Submit godoc
// @Summary Submit a contact inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Param request body inquiryRequest true "Inquiry payload"
// @Success 201 {object} util.Response
// @Router /api/inquiries [post]
func (ctrl *InquiryController) Submit(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	inquiry, err := ctrl.inquiries.SubmitInquiry(&model.Inquiry{
		Name:       req.Name,
		Phone:      req.Phone,
		University: req.University,
		Message:    req.Message,
		Type:       req.Type,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, inquiry)
}

func (ctrl *InquiryController) List(c *gin.Context) {
	inquiries, err := ctrl.inquiries.ListInquiries(model.InquiryStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, inquiries)
}

func (ctrl *InquiryController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	inquiry, err := ctrl.inquiries.GetInquiry(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, inquiry)
}

type inquiryUpdateRequest struct {
	Status     model.InquiryStatus `json:"status"`
	AdminNotes string              `json:"adminNotes"`
}

func (ctrl *InquiryController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req inquiryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	inquiry, err := ctrl.inquiries.UpdateInquiry(id, req.Status, req.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, inquiry)
}

func (ctrl *InquiryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.inquiries.DeleteInquiry(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Inquiry deleted"})
}
