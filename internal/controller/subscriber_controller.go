package controller

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubscriberController struct {
	subscribers *service.SubscriberService
}

func NewSubscriberController(subscribers *service.SubscriberService) *SubscriberController {
	return &SubscriberController{subscribers: subscribers}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags subscribers
// @Accept json
// @Produce json
// @Param request body subscribeRequest true "Email"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/subscribers [post]
func (ctrl *SubscriberController) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	subscriber, err := ctrl.subscribers.Subscribe(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, subscriber)
}

func (ctrl *SubscriberController) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if err := ctrl.subscribers.Unsubscribe(req.Email); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Unsubscribed"})
}

func (ctrl *SubscriberController) List(c *gin.Context) {
	subscribers, err := ctrl.subscribers.ListSubscribers(model.SubscriberStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, subscribers)
}

func (ctrl *SubscriberController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.subscribers.DeleteSubscriber(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Subscriber deleted"})
}
