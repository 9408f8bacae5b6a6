package controllers

import (
	"errors"
	"net/http"

	"KidScreen/models"
	"KidScreen/services"

	"github.com/gin-gonic/gin"
)

var familyService *services.FamilyService
var sessionService *services.SessionService
var settingsService *services.SettingsService

func SetFamilyService(service *services.FamilyService)     { familyService = service }
func SetSessionService(service *services.SessionService)   { sessionService = service }
func SetSettingsService(service *services.SettingsService) { settingsService = service }

// actorFromContext собирает Actor из JWT-клеймов. Заголовок
// X-Guardian-Passcode с верным кодом поднимает ребенка до прав
// опекуна на эту операцию.
func actorFromContext(c *gin.Context) models.Actor {
	actor := models.Actor{
		UID:  c.GetString("user_uid"),
		Type: c.GetString("user_type"),
	}
	if !actor.IsGuardian() {
		if passcode := c.GetHeader("X-Guardian-Passcode"); passcode != "" {
			actor.Elevated = familyService.ChallengePasscode(passcode)
		}
	}
	return actor
}

// respondError переводит доменную ошибку в HTTP-статус.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrFamilyNotFound),
		errors.Is(err, models.ErrChildNotFound),
		errors.Is(err, models.ErrGuardianNotFound),
		errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidDuration),
		errors.Is(err, models.ErrSessionAlreadyClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrQuotaExceeded),
		errors.Is(err, models.ErrBedtimeActive):
		// Опекун может повторить запрос - его гварды не останавливают.
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "override": "guardian"})
	case errors.Is(err, models.ErrPasscodeRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
