package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Owners and public files get the longest expiry S3 allows, anyone who
// merely had the file shared with them gets a short-lived link
const (
	ownerURLExpiry  = 7 * 24 * time.Hour
	sharedURLExpiry = 5 * time.Minute
)

func (a *API) FileDownloadURL(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	file, err := fileForViewer(a.DB, c.Param("id"), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to get download URL",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	expiry := sharedURLExpiry
	if file.OwnerID == userID || file.IsPublic {
		expiry = ownerURLExpiry
	}

	downloadURL, err := a.S3.PresignGetObject(c.Request.Context(), file.S3Key, expiry)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to get download URL",
			"requestID": requestID,
		})

		zap.L().Error("Failed to presign download URL", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": downloadURL,
		"fileName":    file.Name,
	})
}
