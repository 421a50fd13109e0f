package api

import (
	"net/http"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
)

func (a *API) StorageInfo(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	c.JSON(http.StatusOK, gin.H{
		"storageUsed":  user.StorageUsed,
		"storageLimit": user.StorageLimit,
	})
}
