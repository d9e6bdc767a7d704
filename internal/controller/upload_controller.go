package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxImageSize = 10 << 20  // 10 MB
	maxVideoSize = 500 << 20 // 500 MB
)

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedVideoExts = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true, ".mkv": true,
}

type UploadController struct {
	storage service.StorageProvider
}

func NewUploadController(storage service.StorageProvider) *UploadController {
	return &UploadController{storage: storage}
}

func objectName(prefix, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
}

// UploadImage godoc
// @Summary Upload an image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} util.Response
// @Router /api/uploads/image [post]
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "No file uploaded")
		return
	}
	if file.Size > maxImageSize {
		util.BadRequest(c, "Image exceeds the 10MB limit")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		util.BadRequest(c, "Unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	url, err := ctrl.storage.Save(c.Request.Context(), objectName("images", file.Filename), src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Created(c, gin.H{"url": url})
}

// UploadVideo godoc
// @Summary Upload a course video
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Video file"
// @Success 201 {object} util.Response
// @Router /api/uploads/video [post]
func (ctrl *UploadController) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "No file uploaded")
		return
	}
	if file.Size > maxVideoSize {
		util.BadRequest(c, "Video exceeds the 500MB limit")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExts[ext] {
		util.BadRequest(c, "Unsupported video type")
		return
	}

	// ffprobe and thumbnail extraction need a real file on disk, so the
	// upload lands in a temp dir before going to the storage provider.
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer os.Remove(tmpPath)

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		util.BadRequest(c, "File is not a readable video")
		return
	}

	src, err := os.Open(tmpPath)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	videoURL, err := ctrl.storage.Save(c.Request.Context(), objectName("videos", file.Filename), src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	// Thumbnail is best effort, a video without one is still usable.
	thumbnailURL := ""
	thumbPath := filepath.Join(os.TempDir(), uuid.NewString()+".jpg")
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
		defer os.Remove(thumbPath)
		if thumb, err := os.Open(thumbPath); err == nil {
			defer thumb.Close()
			if stat, err := thumb.Stat(); err == nil {
				thumbnailURL, err = ctrl.storage.Save(c.Request.Context(), objectName("thumbnails", "thumb.jpg"), thumb, stat.Size(), "image/jpeg")
				if err != nil {
					logger.Log.Warn("Failed to store video thumbnail", zap.Error(err))
					thumbnailURL = ""
				}
			}
		}
	} else {
		logger.Log.Warn("Failed to generate video thumbnail", zap.Error(err))
	}

	util.Created(c, gin.H{
		"url":       videoURL,
		"thumbnail": thumbnailURL,
		"duration":  info.Duration,
		"width":     info.Width,
		"height":    info.Height,
		"format":    info.Format,
	})
}
