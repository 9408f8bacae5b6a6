package controllers

import (
	"net/http"

	"KidScreen/models"

	"github.com/gin-gonic/gin"
)

// UpdateChildSettings применяет типизированный патч к настройкам
// одного ребенка.
func UpdateChildSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	actor := actorFromContext(c)
	familyUID := c.GetString("family_uid")
	childUID := c.Param("child_uid")

	child, err := settingsService.UpdateChildSettings(actor, familyUID, childUID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": true, "child": child})
}

// UpdateMasterSettings применяет патч к общим настройкам семьи и
// транслирует его всем детям.
func UpdateMasterSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	actor := actorFromContext(c)
	familyUID := c.GetString("family_uid")

	family, err := settingsService.UpdateMasterSettings(actor, familyUID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": true, "family": family})
}
