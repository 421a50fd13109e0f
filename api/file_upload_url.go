package api

import (
	"net/http"

	"cloudly/drive-api/aws"
	"cloudly/drive-api/model"
	"cloudly/drive-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uploadURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	FolderID *uint  `json:"folderId"`
}

// FileUploadURL hands out a presigned PUT URL so the client uploads
// straight to the storage provider. The quota check here is advisory,
// the declared size isn't re-validated at confirm time
func (a *API) FileUploadURL(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	var req uploadURLRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if code, err := validators.UploadRequest(req.FileName, req.FileType, req.FileSize); err != nil {
		c.AbortWithStatusJSON(code, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if user.StorageUsed+req.FileSize > user.StorageLimit {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":      "Storage limit exceeded",
			"storageUsed":  user.StorageUsed,
			"storageLimit": user.StorageLimit,
			"requestID":    requestID,
		})
		return
	}

	if req.FolderID != nil {
		var folder model.Folder

		err := a.DB.
			Where("id = ? AND owner_id = ? AND is_trashed = ?", *req.FolderID, user.ID, false).
			First(&folder).
			Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"message":   "Folder not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if folder exists", zap.Error(err))
			return
		}
	}

	key := aws.ObjectKey(user.ID, req.FolderID, req.FileName)

	uploadURL, err := a.S3.PresignPutObject(c.Request.Context(), key, req.FileType, aws.DefaultUploadExpiry)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to generate upload URL",
			"requestID": requestID,
		})

		zap.L().Error("Failed to presign upload URL", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"s3Key":     key,
		"publicUrl": a.S3.PublicURL(key),
		"fileType":  aws.DocumentType(req.FileType),
	})
}
