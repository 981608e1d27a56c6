package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// HealthHandler reports the latest infrastructure health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
