package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type shareToggleRequest struct {
	IsPublic *bool `json:"isPublic"`
}

// FileShareToggle flips public access on or off. The public URL is only
// handed back when enabling
func (a *API) FileShareToggle(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var req shareToggleRequest
	if err := c.BindJSON(&req); err != nil || req.IsPublic == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "isPublic must be a boolean",
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
			"message":   "Failed to update file sharing",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	file.IsPublic = *req.IsPublic

	if err := a.DB.Model(file).Update("is_public", file.IsPublic).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to update file sharing",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update file entry", zap.Error(err))
		return
	}

	// The public metadata endpoint caches by URI, a toggle must be
	// visible on the next fetch
	if err := store.Delete(fmt.Sprintf("/api/files/public/%d", file.ID)); err != nil {
		zap.L().Debug("No cached public entry to evict", zap.Error(err))
	}

	message := "File is now private"

	var publicURL any
	if file.IsPublic {
		message = "File is now public"
		publicURL = fmt.Sprintf("%s/public/file/%d", viper.GetString("host.frontend_origin"), file.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"file":      file,
		"publicUrl": publicURL,
	})
}
