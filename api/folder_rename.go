package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) FolderRename(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var req renameRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "New name is required",
			"requestID": requestID,
		})
		return
	}

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
			"message":   "Failed to rename folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch folder", zap.Error(err))
		return
	}

	folder.Name = req.Name

	if err := a.DB.Model(folder).Update("name", req.Name).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to rename folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update folder entry", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Folder renamed",
		"folder":  folder,
	})
}
