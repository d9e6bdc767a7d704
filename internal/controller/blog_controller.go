package controller

import (
	"edu_portfolio_backend/internal/middleware"
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	blogs *service.BlogService
}

func NewBlogController(blogs *service.BlogService) *BlogController {
	return &BlogController{blogs: blogs}
}

// List godoc
// @Summary List blog posts
// @Tags blogs
// @Produce json
// @Param category query string false "Category filter"
// @Param notifications query bool false "Only notification posts"
// @Success 200 {object} util.Response
// @Router /api/blogs [get]
func (ctrl *BlogController) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	status := model.BlogPublished
	if user != nil && user.Role != model.Student {
		if q := c.Query("status"); q != "" {
			status = model.BlogStatus(q)
		}
	}

	blogs, err := ctrl.blogs.ListBlogs(c.Query("category"), status, c.Query("notifications") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, blogs)
}

func (ctrl *BlogController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	blog, err := ctrl.blogs.GetBlog(id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, blog)
}

type blogRequest struct {
	Title          string           `json:"title" binding:"required"`
	Content        string           `json:"content" binding:"required"`
	Excerpt        string           `json:"excerpt"`
	Tags           []string         `json:"tags"`
	CoverImage     string           `json:"coverImage"`
	Category       string           `json:"category"`
	Status         model.BlogStatus `json:"status"`
	IsNotification bool             `json:"isNotification"`
}

func (req *blogRequest) toModel() *model.Blog {
	return &model.Blog{
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		Tags:           marshalStringList(req.Tags),
		CoverImage:     req.CoverImage,
		Category:       req.Category,
		Status:         req.Status,
		IsNotification: req.IsNotification,
	}
}

// Create godoc
// @Summary Create a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body blogRequest true "Blog payload"
// @Success 201 {object} util.Response
// @Router /api/blogs [post]
func (ctrl *BlogController) Create(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	blog, err := ctrl.blogs.CreateBlog(req.toModel(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, blog)
}

func (ctrl *BlogController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	blog, err := ctrl.blogs.UpdateBlog(id, req.toModel(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, blog)
}

func (ctrl *BlogController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.blogs.DeleteBlog(id, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Blog deleted"})
}

// ToggleLike godoc
// @Summary Like or unlike a blog post
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} util.Response
// @Router /api/blogs/{id}/like [post]
func (ctrl *BlogController) ToggleLike(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	liked, count, err := ctrl.blogs.ToggleLike(id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{
		"liked":     liked,
		"likeCount": count,
	})
}

type blogCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (ctrl *BlogController) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req blogCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	comment, err := ctrl.blogs.AddComment(id, middleware.CurrentUser(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, comment)
}

func (ctrl *BlogController) Save(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.blogs.SaveBlog(id, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Blog saved"})
}

func (ctrl *BlogController) Unsave(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.blogs.UnsaveBlog(id, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Blog removed from saved"})
}

func (ctrl *BlogController) ListSaved(c *gin.Context) {
	blogs, err := ctrl.blogs.ListSavedBlogs(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, blogs)
}
