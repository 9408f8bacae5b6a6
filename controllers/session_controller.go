package controllers

import (
	"net/http"

	"KidScreen/services"

	"github.com/gin-gonic/gin"
)

// Режимы создания сессии.
const (
	ModeStart         = "start"
	ModeQuickAdd      = "quick_add"
	ModeBonusActivity = "bonus_activity"
	ModeBonusAward    = "bonus_award"
	ModePunishment    = "punishment"
)

// sessionDraft - тело POST /sessions. Mode выбирает операцию
// жизненного цикла, остальные поля зависят от режима.
type sessionDraft struct {
	Mode string `json:"mode" binding:"required"`

	// start
	App               string `json:"app,omitempty"`
	Device            string `json:"device,omitempty"`
	CountsTowardTotal *bool  `json:"counts_toward_total,omitempty"`

	// quick_add / bonus_activity / punishment
	Date            string `json:"date,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Reason          string `json:"reason,omitempty"`

	// bonus_activity
	ActivityID string `json:"activity_id,omitempty"`

	// bonus_award
	Minutes int `json:"minutes,omitempty"`
}

// CreateSession создает или запускает сессию для ребенка.
func CreateSession(c *gin.Context) {
	var draft sessionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	actor := actorFromContext(c)
	familyUID := c.GetString("family_uid")
	childUID := c.Param("child_uid")

	switch draft.Mode {
	case ModeStart:
		session, err := sessionService.StartSession(actor, familyUID, childUID, services.StartSessionInput{
			App:               draft.App,
			Device:            draft.Device,
			CountsTowardTotal: draft.CountsTowardTotal,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": true, "session": session})

	case ModeQuickAdd:
		session, err := sessionService.QuickAdd(actor, familyUID, childUID, services.QuickAddInput{
			Date:            draft.Date,
			DurationMinutes: draft.DurationMinutes,
			App:             draft.App,
			Device:          draft.Device,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": true, "session": session})

	case ModeBonusActivity:
		session, err := sessionService.RecordBonusActivity(actor, familyUID, childUID, services.BonusActivityInput{
			ActivityID:      draft.ActivityID,
			DurationMinutes: draft.DurationMinutes,
			Reason:          draft.Reason,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": true, "session": session})

	case ModeBonusAward:
		session, err := sessionService.AwardBonus(actor, familyUID, childUID, services.BonusAwardInput{
			Minutes: draft.Minutes,
			Reason:  draft.Reason,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": true, "session": session})

	case ModePunishment:
		session, err := sessionService.ApplyPunishment(actor, familyUID, childUID, services.PunishmentInput{
			DurationMinutes: draft.DurationMinutes,
			Reason:          draft.Reason,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": true, "session": session})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown session mode"})
	}
}

// UpdateSession редактирует или завершает сессию. Тело с end=true
// закрывает активную сессию текущим моментом.
func UpdateSession(c *gin.Context) {
	var input struct {
		End    bool                   `json:"end,omitempty"`
		Update services.SessionUpdate `json:"update"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	actor := actorFromContext(c)
	familyUID := c.GetString("family_uid")
	childUID := c.Param("child_uid")
	sessionUID := c.Param("session_uid")

	if input.End {
		session, err := sessionService.EndSession(actor, familyUID, childUID, sessionUID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": true, "session": session})
		return
	}

	session, err := sessionService.UpdateSession(actor, familyUID, childUID, sessionUID, input.Update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": true, "session": session})
}

// DeleteSession удаляет сессию. Ребенку нужен X-Guardian-Passcode.
func DeleteSession(c *gin.Context) {
	actor := actorFromContext(c)
	familyUID := c.GetString("family_uid")
	childUID := c.Param("child_uid")
	sessionUID := c.Param("session_uid")

	if err := sessionService.DeleteSession(actor, familyUID, childUID, sessionUID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": true})
}

// GetChildUsage возвращает сводку использования на день (?date=,
// пусто - сегодня).
func GetChildUsage(c *gin.Context) {
	familyUID := c.GetString("family_uid")
	childUID := c.Param("child_uid")
	date := c.Query("date")

	summary, err := sessionService.GetUsage(familyUID, childUID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
