package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// orderIDParam parses the :id route parameter.
func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
