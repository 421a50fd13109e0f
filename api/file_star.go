package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) FileStar(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	file, err := ownedFile(a.DB, c.Param("id"), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to update file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	file.IsStarred = !file.IsStarred

	if err := a.DB.Model(file).Update("is_starred", file.IsStarred).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to update file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update file entry", zap.Error(err))
		return
	}

	message := "File unstarred"
	if file.IsStarred {
		message = "File starred"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"file":    file,
	})
}
