package api

import (
	"net/http"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileRestore pulls a file back out of the trash. Only files that are
// actually trashed qualify, everything else is a 404
func (a *API) FileRestore(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var file model.File

	err := a.DB.
		Where("id = ? AND owner_id = ? AND is_trashed = ?", c.Param("id"), userID, true).
		First(&file).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "File not found in trash",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to restore file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	file.IsTrashed = false
	file.TrashedAt = nil

	err = a.DB.
		Model(&file).
		Updates(map[string]any{
			"is_trashed": false,
			"trashed_at": nil,
		}).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to restore file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to restore file", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File restored",
		"file":    file,
	})
}
