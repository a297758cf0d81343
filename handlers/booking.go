package handlers

import (
	"errors"
	"net/http"

	"wellnest/models"
	"wellnest/services/booking"
	"wellnest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves reservation endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// ReserveSlotHandler books a slot for the authenticated client. A conflict is
// reported as 409 with retryable=true so the UI re-fetches the slot list; it
// is a normal outcome of optimistic listing, not a server fault.
func (h *BookingHandler) ReserveSlotHandler(c *gin.Context) {
	clientIDValue, exists := c.Get("clientID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Client not authenticated"})
		return
	}
	clientID, _ := clientIDValue.(string)

	var req models.ReserveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Error("Invalid reservation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	req.ClientID = clientID

	appt, err := h.Service.ReserveSlot(c.Request.Context(), req)
	if err != nil {
		switch {
		case booking.IsSlotUnavailable(err):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Slot no longer available, please pick another",
				"retryable": true,
			})
		case errors.Is(err, booking.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		default:
			h.Logger.Error("Failed to reserve slot", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to reserve slot", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment booked",
		"appointment": appt,
	})
}

// CancelAppointmentHandler marks an appointment cancelled. The service
// rejects the call unless the authenticated client booked the appointment.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	clientIDValue, exists := c.Get("clientID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Client not authenticated"})
		return
	}
	clientID, _ := clientIDValue.(string)

	appointmentID := c.Param("id")
	if appointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing appointment ID in path"})
		return
	}

	if err := h.Service.CancelAppointment(c.Request.Context(), appointmentID, clientID); err != nil {
		switch {
		case errors.Is(err, booking.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		case errors.Is(err, booking.ErrNotAppointmentOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Appointment belongs to another client"})
		default:
			h.Logger.Error("Failed to cancel appointment", zap.String("appointmentID", appointmentID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel appointment", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}
