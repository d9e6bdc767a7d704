package controller

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SuccessStoryController struct {
	stories *service.SuccessStoryService
}

func NewSuccessStoryController(stories *service.SuccessStoryService) *SuccessStoryController {
	return &SuccessStoryController{stories: stories}
}

// List godoc
// @Summary List success stories
// @Tags success-stories
// @Produce json
// @Param featured query bool false "Only featured stories"
// @Success 200 {object} util.Response
// @Router /api/success-stories [get]
func (ctrl *SuccessStoryController) List(c *gin.Context) {
	stories, err := ctrl.stories.ListStories(c.Query("featured") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, stories)
}

func (ctrl *SuccessStoryController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	story, err := ctrl.stories.GetStory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, story)
}

type successStoryRequest struct {
	Name       string `json:"name" binding:"required"`
	Score      string `json:"score"`
	University string `json:"university"`
	Image      string `json:"image"`
	Quote      string `json:"quote"`
	Featured   bool   `json:"featured"`
}

func (req *successStoryRequest) toModel() *model.SuccessStory {
	return &model.SuccessStory{
		Name:       req.Name,
		Score:      req.Score,
		University: req.University,
		Image:      req.Image,
		Quote:      req.Quote,
		Featured:   req.Featured,
	}
}

func (ctrl *SuccessStoryController) Create(c *gin.Context) {
	var req successStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	story, err := ctrl.stories.CreateStory(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, story)
}

func (ctrl *SuccessStoryController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req successStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	story, err := ctrl.stories.UpdateStory(id, req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, story)
}

func (ctrl *SuccessStoryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.stories.DeleteStory(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Success story deleted"})
}
