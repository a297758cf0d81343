package handlers

import (
	"net/http"
	"strconv"

	"wellnest/services/schedule"
	"wellnest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves a provider's schedule editing endpoints. The
// provider ID always comes from the auth middleware context; providers can
// only edit their own schedule.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func providerIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("providerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid provider ID in context"})
		return "", false
	}
	return id, true
}

func dayIndexParam(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day index in path"})
		return 0, false
	}
	return idx, true
}

func rangeIndexParam(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("rangeIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid range index in path"})
		return 0, false
	}
	return idx, true
}

func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	avail, err := h.Service.GetAvailability(providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}

func (h *ScheduleHandler) ToggleDayHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}
	dayIndex, ok := dayIndexParam(c)
	if !ok {
		return
	}

	avail, err := h.Service.ToggleDay(providerID, dayIndex)
	if err != nil {
		utils.GetLogger().Error("Failed to toggle day", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to toggle day", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}

func (h *ScheduleHandler) AddTimeRangeHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}
	dayIndex, ok := dayIndexParam(c)
	if !ok {
		return
	}

	avail, err := h.Service.AddRange(providerID, dayIndex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to add time range", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}

func (h *ScheduleHandler) UpdateTimeRangeHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}
	dayIndex, ok := dayIndexParam(c)
	if !ok {
		return
	}
	rangeIndex, ok := rangeIndexParam(c)
	if !ok {
		return
	}

	var body struct {
		Field string `json:"field" binding:"required"` // "start" or "end"
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	avail, err := h.Service.UpdateRange(providerID, dayIndex, rangeIndex, body.Field, body.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update time range", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}

func (h *ScheduleHandler) RemoveTimeRangeHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}
	dayIndex, ok := dayIndexParam(c)
	if !ok {
		return
	}
	rangeIndex, ok := rangeIndexParam(c)
	if !ok {
		return
	}

	avail, err := h.Service.RemoveRange(providerID, dayIndex, rangeIndex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to remove time range", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}

func (h *ScheduleHandler) AddBlockedDateHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"` // "YYYY-MM-DD"
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid date in request body"})
		return
	}

	avail, err := h.Service.AddBlocked(providerID, body.Date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to add blocked date", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}

func (h *ScheduleHandler) RemoveBlockedDateHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date in path"})
		return
	}

	avail, err := h.Service.RemoveBlocked(providerID, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to remove blocked date", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}
