package api

import (
	"net/http"

	"cloudly/drive-api/model"
	"cloudly/drive-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FolderDelete trashes the folder and everything below it. Permanent
// deletion never cascades: the folder has to be emptied first, and a
// non-empty attempt reports what's still inside
func (a *API) FolderDelete(c *gin.Context) {
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
			"message":   "Failed to delete folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch folder", zap.Error(err))
		return
	}

	if c.Query("permanent") != "true" {
		if err := service.CascadeTrash(a.DB, userID, folder.ID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Failed to delete folder",
				"requestID": requestID,
			})

			zap.L().Error("Failed to trash folder", zap.Error(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Folder moved to trash"})
		return
	}

	var filesCount, subfoldersCount int64

	err = a.DB.
		Model(&model.File{}).
		Where("folder_id = ?", folder.ID).
		Count(&filesCount).
		Error
	if err == nil {
		err = a.DB.
			Model(&model.Folder{}).
			Where("parent_folder_id = ?", folder.ID).
			Count(&subfoldersCount).
			Error
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to delete folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count folder contents", zap.Error(err))
		return
	}

	if filesCount+subfoldersCount > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":         "Folder is not empty",
			"hasFiles":        filesCount > 0,
			"hasSubfolders":   subfoldersCount > 0,
			"filesCount":      filesCount,
			"subfoldersCount": subfoldersCount,
			"requestID":       requestID,
		})
		return
	}

	if err := a.DB.Delete(folder).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to delete folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete folder record", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder permanently deleted"})
}
