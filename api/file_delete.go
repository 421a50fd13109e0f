package api

import (
	"net/http"
	"time"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileDelete trashes a file, or with ?permanent=true removes the blob,
// the row and the quota it occupied. Only the owner may delete, a shared
// viewer gets the same 404 as a stranger
func (a *API) FileDelete(c *gin.Context) {
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
			"message":   "Failed to delete file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	if c.Query("permanent") != "true" {
		err = a.DB.
			Model(file).
			Updates(map[string]any{
				"is_trashed": true,
				"trashed_at": time.Now(),
			}).
			Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Failed to delete file",
				"requestID": requestID,
			})

			zap.L().Error("Failed to trash file", zap.Error(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "File moved to trash"})
		return
	}

	// Blob first. If this fails the row stays and the delete can be
	// retried, the reverse order would leak an orphaned blob
	if file.S3Key != "" {
		if err := a.S3.DeleteObject(c.Request.Context(), file.S3Key); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Failed to delete file",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete file from S3", zap.Error(err))
			return
		}
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(file).Error; err != nil {
			return err
		}

		var owner model.User
		if err := tx.Where("id = ?", userID).First(&owner).Error; err != nil {
			return err
		}

		// Floor at zero, the counter must never go negative
		return tx.
			Model(&model.User{}).
			Where("id = ?", userID).
			Update("storage_used", max(0, owner.StorageUsed-file.Size)).
			Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to delete file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file record", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File permanently deleted"})
}
