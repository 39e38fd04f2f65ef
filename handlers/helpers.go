package handlers

import (
	"errors"
	"net/http"

	"carewell/services/appointment"
	"carewell/services/scheduling"
	"carewell/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps typed service errors onto HTTP statuses. Anything
// unrecognized is a 500; the details stay server-side.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case appointment.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case appointment.IsConflict(err):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", err.Error())
	case appointment.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
	case isRangeError(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid range", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}

func isRangeError(err error) bool {
	var re *scheduling.RangeError
	return errors.As(err, &re)
}

// patientID pulls the authenticated patient id set by the auth middleware.
func patientID(c *gin.Context) (string, bool) {
	id := c.GetString("patientID")
	if id == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing patient identity")
		return "", false
	}
	return id, true
}
