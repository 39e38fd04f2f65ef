package appointment

import (
	"context"

	"carewell/models"
)

// Service owns the appointment lifecycle: booking, rescheduling with a fresh
// availability check at commit time, cancellation with a mandatory reason, and
// the list/stat reads the portal re-fetches after every mutation.
type Service interface {
	Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	Reschedule(ctx context.Context, patientID, appointmentID string, req models.RescheduleRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, patientID, appointmentID, reason string) error
	Stats(ctx context.Context, patientID string) (*models.AppointmentStats, error)
	Upcoming(ctx context.Context, patientID string) ([]models.Appointment, error)
	Past(ctx context.Context, patientID string) ([]models.Appointment, error)
}

// ReminderScheduler enqueues the pre-appointment reminder task. Implemented by
// the cron package over asynq; a nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}
