package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) FolderStar(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	folder, err := ownedFolder(a.DB, c.Param("id"), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to update folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch folder", zap.Error(err))
		return
	}

	folder.IsStarred = !folder.IsStarred

	if err := a.DB.Model(folder).Update("is_starred", folder.IsStarred).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to update folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update folder entry", zap.Error(err))
		return
	}

	message := "Folder unstarred"
	if folder.IsStarred {
		message = "Folder starred"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"folder":  folder,
	})
}
