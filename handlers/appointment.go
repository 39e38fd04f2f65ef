package handlers

import (
	"net/http"

	"carewell/models"
	"carewell/services/appointment"
	"carewell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the appointment lifecycle endpoints.
type AppointmentHandler struct {
	Service appointment.Service
	Logger  *zap.Logger
}

func NewAppointmentHandler(svc appointment.Service, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// StatsHandler returns the upcoming/past counters for the current patient.
func (h *AppointmentHandler) StatsHandler(c *gin.Context) {
	pid, ok := patientID(c)
	if !ok {
		return
	}

	stats, err := h.Service.Stats(c.Request.Context(), pid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpcomingHandler lists the patient's upcoming appointments.
func (h *AppointmentHandler) UpcomingHandler(c *gin.Context) {
	pid, ok := patientID(c)
	if !ok {
		return
	}

	appts, err := h.Service.Upcoming(c.Request.Context(), pid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// PastHandler lists the patient's past and cancelled appointments.
func (h *AppointmentHandler) PastHandler(c *gin.Context) {
	pid, ok := patientID(c)
	if !ok {
		return
	}

	appts, err := h.Service.Past(c.Request.Context(), pid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// BookHandler creates an appointment from a resolved slot selection.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	pid, ok := patientID(c)
	if !ok {
		return
	}

	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), pid, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.Logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID), zap.String("doctorID", appt.DoctorID))
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// RescheduleHandler moves an appointment to a new date/time.
func (h *AppointmentHandler) RescheduleHandler(c *gin.Context) {
	pid, ok := patientID(c)
	if !ok {
		return
	}
	apptID := c.Param("id")

	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.Reschedule(c.Request.Context(), pid, apptID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.Logger.Info("appointment rescheduled",
		zap.String("appointmentID", apptID),
		zap.String("date", req.AppointmentDate), zap.String("time", req.AppointmentTime))
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// CancelHandler cancels an appointment. The reason is mandatory.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	pid, ok := patientID(c)
	if !ok {
		return
	}
	apptID := c.Param("id")

	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.Cancel(c.Request.Context(), pid, apptID, req.CancellationReason); err != nil {
		handleServiceError(c, err)
		return
	}

	h.Logger.Info("appointment cancelled", zap.String("appointmentID", apptID))
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
