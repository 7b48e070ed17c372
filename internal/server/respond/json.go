package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes payload as a 200 response.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}
