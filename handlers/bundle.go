package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	// Appointment lifecycle endpoints.
	StatsHandler      gin.HandlerFunc
	UpcomingHandler   gin.HandlerFunc
	PastHandler       gin.HandlerFunc
	BookHandler       gin.HandlerFunc
	RescheduleHandler gin.HandlerFunc
	CancelHandler     gin.HandlerFunc

	// Availability endpoints.
	AvailableSlotsRangeHandler gin.HandlerFunc

	// Directory endpoints.
	ListBranchesHandler    gin.HandlerFunc
	ListDepartmentsHandler gin.HandlerFunc
	ListDoctorsHandler     gin.HandlerFunc
	SetScheduleHandler     gin.HandlerFunc
}
