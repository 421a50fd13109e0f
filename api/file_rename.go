package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type renameRequest struct {
	Name string `json:"name"`
}

func (a *API) FileRename(c *gin.Context) {
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
			"message":   "Failed to rename file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	file.Name = req.Name

	if err := a.DB.Model(file).Update("name", req.Name).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to rename file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update file entry", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File renamed",
		"file":    file,
	})
}
