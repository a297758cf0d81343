package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wellnest/services/booking"
	"wellnest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves slot queries.
type AvailabilityHandler struct {
	Engine *booking.DefaultSchedulingEngine
}

func NewAvailabilityHandler(engine *booking.DefaultSchedulingEngine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// GetProviderAvailabilityHandler returns the open slots for a provider on a
// given date. Query params: date (required, "YYYY-MM-DD") and duration
// (optional minutes, default 60).
func (h *AvailabilityHandler) GetProviderAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	providerID := c.Param("id")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration query parameter"})
			return
		}
		duration = parsed
	}

	slots, err := h.Engine.GetProviderAvailability(c.Request.Context(), providerID, date, duration)
	if err != nil {
		if errors.Is(err, booking.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		logger.Error("Failed to compute availability",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providerId": providerID,
		"date":       date,
		"slots":      slots,
	})
}
