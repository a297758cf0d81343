package routes

import (
	"net/http"
	"time"

	"wellnest/handlers"
	"wellnest/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers availability queries and schedule editing.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public: anyone browsing the directory can ask for open slots.
		api.GET("/:id/availability", hb.Availability.GetProviderAvailabilityHandler)

		// Schedule editing requires provider authentication; the provider ID
		// comes from the token, not the path.
		protected := api.Group("/schedule")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.GET("", hb.Schedule.GetScheduleHandler)
		protected.PUT("/days/:dayIndex/toggle", hb.Schedule.ToggleDayHandler)
		protected.POST("/days/:dayIndex/ranges", hb.Schedule.AddTimeRangeHandler)
		protected.PATCH("/days/:dayIndex/ranges/:rangeIndex", hb.Schedule.UpdateTimeRangeHandler)
		protected.DELETE("/days/:dayIndex/ranges/:rangeIndex", hb.Schedule.RemoveTimeRangeHandler)
		protected.POST("/blocked-dates", hb.Schedule.AddBlockedDateHandler)
		protected.DELETE("/blocked-dates/:date", hb.Schedule.RemoveBlockedDateHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the reservation boundary.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthClientMiddleware(hb.ClientRepo))
		bookingGroup.POST("/reserve", hb.Booking.ReserveSlotHandler)
		bookingGroup.DELETE("/appointments/:id", hb.Booking.CancelAppointmentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Wellnest"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
