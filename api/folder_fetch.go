package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FolderFetch returns a single folder for its owner or anyone it was
// shared with
func (a *API) FolderFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	folder, err := folderForViewer(a.DB, c.Param("id"), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to fetch folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch folder", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder": folder})
}
