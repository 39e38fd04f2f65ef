package handlers

import (
	"net/http"

	"carewell/services/scheduling"
	"carewell/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves resolved slot ranges for the booking calendar.
type AvailabilityHandler struct {
	Service scheduling.AvailabilityService
}

func NewAvailabilityHandler(svc scheduling.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// RangeHandler resolves a doctor's open-slot schedule over an inclusive date
// range. A backend failure is a 5xx, never an empty schedule; the client must
// be able to tell "fully booked" from "fetch failed".
func (h *AvailabilityHandler) RangeHandler(c *gin.Context) {
	doctorID := c.Query("doctor_id")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if doctorID == "" || startDate == "" || endDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "doctor_id, start_date and end_date are required")
		return
	}

	schedule, err := h.Service.ResolveRange(c.Request.Context(), doctorID, startDate, endDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}
