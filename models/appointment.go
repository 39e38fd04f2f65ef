package models

import "time"

// Appointment status values as observed by clients.
const (
	AppointmentStatusUpcoming  = "upcoming"
	AppointmentStatusPast      = "past"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment is the booking record. Identity is stable across reschedule;
// a reschedule mutates date/time of the same entity.
type Appointment struct {
	ID                  string    `bson:"id" json:"id"`
	PatientID           string    `bson:"patientId" json:"-"`
	DoctorID            string    `bson:"doctorId" json:"doctor_id"`
	DoctorName          string    `bson:"doctorName" json:"doctor_name"`
	Branch              string    `bson:"branch" json:"branch"`
	Department          string    `bson:"department" json:"department"`
	AppointmentDate     string    `bson:"appointmentDate" json:"appointment_date"` // "2006-01-02"
	AppointmentTime     string    `bson:"appointmentTime" json:"appointment_time"` // "15:04:05"
	AppointmentDateTime time.Time `bson:"appointmentDatetime" json:"appointment_datetime"`
	Status              string    `bson:"status" json:"status"`
	CancellationReason  string    `bson:"cancellationReason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt           time.Time `bson:"createdAt" json:"-"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"-"`
}

// AppointmentStats carries the portal's upcoming/past counters.
type AppointmentStats struct {
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
}

// BookAppointmentRequest is the payload for creating an appointment.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctor_id" binding:"required"`
	BranchID        string `json:"branch_id" binding:"required"`
	DepartmentID    string `json:"department_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"` // "15:04:05"
}

// RescheduleRequest is the payload for moving an appointment.
type RescheduleRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"` // "15:04:05"
}

// CancelRequest is the payload for cancelling an appointment.
type CancelRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}
