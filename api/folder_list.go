package api

import (
	"net/http"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) FolderList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	filter, err := parseListFilter(c, "parentFolderId")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	var total int64

	err = filter.
		apply(a.DB.Model(&model.Folder{}), userID, "parent_folder_id").
		Count(&total).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to fetch folders",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count user folders", zap.Error(err))
		return
	}

	var folders []model.Folder

	err = filter.
		apply(a.DB.Model(&model.Folder{}), userID, "parent_folder_id").
		Order("updated_at desc").
		Offset(filter.offset()).
		Limit(filter.limit).
		Find(&folders).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to fetch folders",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user folders", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"folders":    folders,
		"pagination": filter.paginate(total, len(folders)),
	})
}
