package api

import (
	"net/http"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) FileList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	filter, err := parseListFilter(c, "folderId")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	var total int64

	err = filter.
		apply(a.DB.Model(&model.File{}), userID, "folder_id").
		Count(&total).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to fetch files",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count user files", zap.Error(err))
		return
	}

	var files []model.File

	err = filter.
		apply(a.DB.Model(&model.File{}), userID, "folder_id").
		Order("updated_at desc").
		Offset(filter.offset()).
		Limit(filter.limit).
		Find(&files).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to fetch files",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user files", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files":      files,
		"pagination": filter.paginate(total, len(files)),
	})
}
