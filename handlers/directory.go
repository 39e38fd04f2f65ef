package handlers

import (
	"net/http"

	scheduleRepo "carewell/database/repository/schedule"
	"carewell/models"
	"carewell/services/directory"
	"carewell/services/scheduling"
	"carewell/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the branch/department/doctor cascade and the
// doctor schedule setup endpoint.
type DirectoryHandler struct {
	Service      directory.Service
	Schedule     scheduleRepo.ScheduleRepository
	Availability scheduling.AvailabilityService
}

func NewDirectoryHandler(svc directory.Service, schedule scheduleRepo.ScheduleRepository, avail scheduling.AvailabilityService) *DirectoryHandler {
	return &DirectoryHandler{Service: svc, Schedule: schedule, Availability: avail}
}

func (h *DirectoryHandler) ListBranchesHandler(c *gin.Context) {
	branches, err := h.Service.Branches(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// ListDepartmentsHandler returns departments, narrowed to those with at least
// one active doctor in branch_id when given.
func (h *DirectoryHandler) ListDepartmentsHandler(c *gin.Context) {
	departments, err := h.Service.Departments(c.Request.Context(), c.Query("branch_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

func (h *DirectoryHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Service.Doctors(c.Request.Context(), c.Query("branch_id"), c.Query("department_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

// SetScheduleHandler replaces a doctor's day schedules. Booked slots survive
// the replace; the repository carries them over.
func (h *DirectoryHandler) SetScheduleHandler(c *gin.Context) {
	doctorID := c.Param("id")

	var req models.SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Schedule.SetDaySchedules(c.Request.Context(), doctorID, req.Days); err != nil {
		handleServiceError(c, err)
		return
	}
	if h.Availability != nil {
		h.Availability.InvalidateDoctor(c.Request.Context(), doctorID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "days": len(req.Days)})
}
