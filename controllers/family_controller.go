package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFamilyState возвращает снимок семьи глазами зрителя из токена:
// опекун видит всех детей со сводками, ребенок - только себя.
func GetFamilyState(c *gin.Context) {
	familyUID := c.GetString("family_uid")
	viewerType := c.GetString("user_type")
	viewerUID := c.GetString("user_uid")

	state, err := familyService.GetFamilyState(familyUID, viewerType, viewerUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
