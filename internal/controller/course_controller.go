package controller

import (
	"edu_portfolio_backend/internal/middleware"
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	courses *service.CourseService
}

func NewCourseController(courses *service.CourseService) *CourseController {
	return &CourseController{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Param category query string false "Category filter"
// @Param status query string false "Status filter (staff only)"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (ctrl *CourseController) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// Anonymous visitors and students only ever see the active catalogue.
	status := model.CourseActive
	if user != nil && user.Role != model.Student {
		if q := c.Query("status"); q != "" {
			status = model.CourseStatus(q)
		}
	}

	courses, err := ctrl.courses.ListCourses(c.Request.Context(), c.Query("category"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, courses)
}

// Get godoc
// @Summary Get a course with its curriculum
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (ctrl *CourseController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := ctrl.courses.GetCourse(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, course)
}

type courseRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Category    string             `json:"category"`
	Price       float64            `json:"price"`
	Duration    string             `json:"duration"`
	Level       string             `json:"level"`
	Features    []string           `json:"features"`
	Outcomes    []string           `json:"outcomes"`
	Image       string             `json:"image"`
	Status      model.CourseStatus `json:"status"`
}

func (req *courseRequest) toModel() *model.Course {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		Level:       req.Level,
		Image:       req.Image,
		Status:      req.Status,
	}
	course.Features = marshalStringList(req.Features)
	course.Outcomes = marshalStringList(req.Outcomes)
	return course
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body courseRequest true "Course payload"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (ctrl *CourseController) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctrl.courses.CreateCourse(c.Request.Context(), req.toModel(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, course)
}

func (ctrl *CourseController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctrl.courses.UpdateCourse(c.Request.Context(), id, req.toModel(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, course)
}

func (ctrl *CourseController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.courses.DeleteCourse(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Course deleted"})
}

// Enroll godoc
// @Summary Enroll the authenticated user in a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (ctrl *CourseController) Enroll(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := ctrl.courses.Enroll(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{
		"message": "Enrolled",
		"course":  course,
	})
}

func (ctrl *CourseController) ListEnrolled(c *gin.Context) {
	courses, err := ctrl.courses.ListEnrolled(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, courses)
}

type courseCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// AddComment godoc
// @Summary Comment on and rate a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body courseCommentRequest true "Comment payload"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/comments [post]
func (ctrl *CourseController) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req courseCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctrl.courses.AddComment(c.Request.Context(), id, middleware.CurrentUser(c), req.Comment, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, course)
}

type sectionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (ctrl *CourseController) AddSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	section, err := ctrl.courses.AddSection(c.Request.Context(), id, &model.Section{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, section)
}

func (ctrl *CourseController) UpdateSection(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "sectionId")
	if !ok {
		return
	}
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	section, err := ctrl.courses.UpdateSection(c.Request.Context(), courseID, sectionID, &model.Section{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, section)
}

func (ctrl *CourseController) DeleteSection(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "sectionId")
	if !ok {
		return
	}
	if err := ctrl.courses.DeleteSection(c.Request.Context(), courseID, sectionID, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Section deleted"})
}

type videoRequest struct {
	Title     string  `json:"title" binding:"required"`
	URL       string  `json:"url"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Order     int     `json:"order"`
	IsFree    bool    `json:"isFree"`
}

func (req *videoRequest) toModel() *model.Video {
	return &model.Video{
		Title:     req.Title,
		URL:       req.URL,
		Thumbnail: req.Thumbnail,
		Duration:  req.Duration,
		Order:     req.Order,
		IsFree:    req.IsFree,
	}
}

func (ctrl *CourseController) AddVideo(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "sectionId")
	if !ok {
		return
	}
	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	video, err := ctrl.courses.AddVideo(c.Request.Context(), courseID, sectionID, req.toModel(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, video)
}

func (ctrl *CourseController) UpdateVideo(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "sectionId")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}
	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	video, err := ctrl.courses.UpdateVideo(c.Request.Context(), courseID, sectionID, videoID, req.toModel(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, video)
}

func (ctrl *CourseController) DeleteVideo(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "sectionId")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}
	if err := ctrl.courses.DeleteVideo(c.Request.Context(), courseID, sectionID, videoID, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Video deleted"})
}
