package api

import (
	"net/http"
	"strings"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type folderCreateRequest struct {
	Name           string `json:"name"`
	ParentFolderID *uint  `json:"parentFolderId"`
}

// FolderCreate makes a folder, optionally nested. The parent must exist,
// belong to the caller and not sit in the trash. This is only checked
// here, a parent trashed later doesn't re-validate its children
func (a *API) FolderCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var req folderCreateRequest
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
			"message":   "Folder name is required",
			"requestID": requestID,
		})
		return
	}

	if req.ParentFolderID != nil {
		var parent model.Folder

		err := a.DB.
			Where("id = ? AND owner_id = ? AND is_trashed = ?", *req.ParentFolderID, userID, false).
			First(&parent).
			Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"message":   "Parent folder not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Failed to create folder",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if parent folder exists", zap.Error(err))
			return
		}
	}

	folder := model.Folder{
		Name:           req.Name,
		OwnerID:        userID,
		ParentFolderID: req.ParentFolderID,
	}

	if err := a.DB.Create(&folder).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to create folder",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save folder record", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Folder created successfully",
		"folder":  folder,
	})
}
