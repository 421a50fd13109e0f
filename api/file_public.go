package api

import (
	"net/http"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FilePublicFetch returns public file metadata together with a long-lived
// download URL. No auth, anyone holding the link can call it
func (a *API) FilePublicFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var file model.File

	err := a.DB.Where("id = ?", c.Param("id")).First(&file).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to get file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	if !file.IsPublic {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message":   "This file is not publicly accessible",
			"requestID": requestID,
		})
		return
	}

	downloadURL, err := a.S3.PresignGetObject(c.Request.Context(), file.S3Key, ownerURLExpiry)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to get file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to presign download URL", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file": gin.H{
			"id":       file.ID,
			"name":     file.Name,
			"type":     file.Type,
			"mimeType": file.MimeType,
			"size":     file.Size,
		},
		"downloadUrl": downloadURL,
	})
}
