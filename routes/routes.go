package routes

import (
	"net/http"
	"time"

	"carewell/handlers"
	"carewell/middleware"
	"carewell/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers the patient appointment endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	my := r.Group("/api/my-appointments")
	{
		my.Use(middleware.JWTAuthPatientMiddleware())
		my.GET("/stats", hb.StatsHandler)
		my.GET("/upcoming", hb.UpcomingHandler)
		my.GET("/past", hb.PastHandler)
	}

	appts := r.Group("/api/appointments")
	{
		// Slot resolution is read-only but still scoped to a signed-in patient.
		appts.Use(middleware.JWTAuthPatientMiddleware())
		appts.GET("/available-slots/range", hb.AvailableSlotsRangeHandler)
		appts.POST("", hb.BookHandler)
		appts.POST("/:id/cancel", hb.CancelHandler)
		appts.POST("/:id/reschedule", hb.RescheduleHandler)
	}
}

// RegisterDirectoryRoutes registers the public directory cascade endpoints.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/branches", hb.ListBranchesHandler)
		api.GET("/departments", hb.ListDepartmentsHandler)
		api.GET("/doctors", hb.ListDoctorsHandler)
	}

	admin := r.Group("/api/doctors")
	{
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.PUT("/:id/schedule", hb.SetScheduleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAppointmentRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterHealthRoute(r)
}
