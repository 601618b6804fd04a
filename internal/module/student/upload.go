package student

import (
	"strings"
	"time"

	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/global/storage"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

type uploadReq struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// CreateUploadURL signs a PUT for a new résumé object owned by the caller.
// The object path is only stored once the client submits it with the
// application.
func CreateUploadURL(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)

	var req uploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips("Name and type are required"))
		return
	}

	bucket, err := storage.Get(c)
	if err != nil {
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	key := bucket.ResumeKey(profile.ID, req.Name, time.Now())
	upload, err := bucket.PresignUpload(c, key, req.Type)
	if err != nil {
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	response.Success(c, upload)
}

// CreateDownloadURL signs a short-lived GET. Students may only sign their
// own uploads.
func CreateDownloadURL(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)

	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Path is required"))
		return
	}

	bucket, err := storage.Get(c)
	if err != nil {
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	if profile.Role == model.RoleStudent && !bucket.OwnedBy(path, profile.ID) {
		response.Fail(c, response.ErrForbidden)
		return
	}
	url, err := bucket.PresignDownload(c, path)
	if err != nil {
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"signedUrl": url})
}
