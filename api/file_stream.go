package api

import (
	"fmt"
	"net/http"
	"net/url"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileStream proxies the file bytes through the server so access is
// re-checked on every request, unlike a presigned URL which stays valid
// until it expires
func (a *API) FileStream(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	file, err := fileForViewer(a.DB, c.Param("id"), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to stream file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	a.pipeObject(c, file, "private, max-age=3600")
}

// FilePublicStream is the unauthenticated variant, allowed only for
// files whose owner made them public
func (a *API) FilePublicStream(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var file model.File

	err := a.DB.Where("id = ?", c.Param("id")).First(&file).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to stream file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err))
		return
	}

	if !file.IsPublic {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message":   "This file is not publicly accessible",
			"requestID": requestID,
		})
		return
	}

	a.pipeObject(c, &file, "public, max-age=86400")
}

func (a *API) pipeObject(c *gin.Context, file *model.File, cacheControl string) {
	requestID := c.MustGet("requestID").(string)

	stream, err := a.S3.OpenStream(c.Request.Context(), file.S3Key)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to get file stream",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open object stream", zap.String("key", file.S3Key), zap.Error(err))
		return
	}
	defer stream.Body.Close()

	c.DataFromReader(http.StatusOK, stream.ContentLength, stream.ContentType, stream.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename="%s"`, url.PathEscape(file.Name)),
		"Cache-Control":       cacheControl,
	})
}
