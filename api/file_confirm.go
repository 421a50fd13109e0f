package api

import (
	"net/http"

	"cloudly/drive-api/aws"
	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type confirmUploadRequest struct {
	Name     string `json:"name"`
	S3Key    string `json:"s3Key"`
	S3URL    string `json:"s3Url"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	FolderID *uint  `json:"folderId"`
}

// FileConfirmUpload registers the metadata after the client finished its
// direct PUT. The row insert and the owner's quota increment commit
// together or not at all
func (a *API) FileConfirmUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var req confirmUploadRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if req.Name == "" || req.S3Key == "" || req.S3URL == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "name, s3Key, and s3Url are required",
			"requestID": requestID,
		})
		return
	}

	if req.Size < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "size can't be negative",
			"requestID": requestID,
		})
		return
	}

	file := model.File{
		Name:     req.Name,
		Type:     aws.DocumentType(req.MimeType),
		MimeType: req.MimeType,
		Size:     req.Size,
		S3Key:    req.S3Key,
		S3URL:    req.S3URL,
		OwnerID:  userID,
		FolderID: req.FolderID,
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}

		return tx.
			Model(&model.User{}).
			Where("id = ?", userID).
			Update("storage_used", gorm.Expr("storage_used + ?", req.Size)).
			Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to save file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save file record", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"file":    file,
	})
}
