package portal

import (
	"context"
	"errors"
	"strings"

	"carewell/models"
	"carewell/services/scheduling"
)

// AppointmentAPI is the slice of the backend the lifecycle manager needs.
type AppointmentAPI interface {
	Stats(ctx context.Context) (*models.AppointmentStats, error)
	Upcoming(ctx context.Context) ([]models.Appointment, error)
	Past(ctx context.Context) ([]models.Appointment, error)
	Book(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error)
	Reschedule(ctx context.Context, appointmentID string, req models.RescheduleRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID, reason string) error
}

// Notifier receives user-facing outcome messages. The zero-value nopNotifier
// is used when nil is passed.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}

var (
	// ErrBlankReason rejects a cancellation before it reaches the network.
	ErrBlankReason = errors.New("cancellation reason must not be blank")
	// ErrIncompleteSelection rejects a booking intent missing a doctor,
	// date or time.
	ErrIncompleteSelection = errors.New("doctor, date and time must all be selected")
)

// Manager drives the appointment lifecycle from the portal side. Its lists
// and counters are never edited locally: after any successful mutation it
// re-fetches from the backend, so what the user sees is what the server has.
type Manager struct {
	api    AppointmentAPI
	notify Notifier

	Stats    models.AppointmentStats
	Upcoming []models.Appointment
	Past     []models.Appointment
}

// NewManager builds a lifecycle manager. notify may be nil.
func NewManager(api AppointmentAPI, notify Notifier) *Manager {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Manager{api: api, notify: notify}
}

// Refresh reloads the counters and both lists from the backend.
func (m *Manager) Refresh(ctx context.Context) error {
	stats, err := m.api.Stats(ctx)
	if err != nil {
		return err
	}
	upcoming, err := m.api.Upcoming(ctx)
	if err != nil {
		return err
	}
	past, err := m.api.Past(ctx)
	if err != nil {
		return err
	}

	m.Stats = *stats
	m.Upcoming = upcoming
	m.Past = past
	return nil
}

// Book commits a booking intent. displayTime is the slot as shown to the
// user, 12-hour clock like "05:10 PM"; it is converted to the wire format
// before submission. On failure nothing local changes and the user is told
// whether the slot filled under them or the request itself failed.
func (m *Manager) Book(ctx context.Context, doctorID, branchID, departmentID, date, displayTime string) error {
	if doctorID == "" || date == "" || displayTime == "" {
		return ErrIncompleteSelection
	}
	wireTime, err := scheduling.ConvertTo24Hour(displayTime)
	if err != nil {
		return err
	}

	_, err = m.api.Book(ctx, models.BookAppointmentRequest{
		DoctorID:        doctorID,
		BranchID:        branchID,
		DepartmentID:    departmentID,
		AppointmentDate: date,
		AppointmentTime: wireTime,
	})
	if err != nil {
		if IsConflict(err) {
			m.notify.Failure("That slot was just taken. Please pick another time.")
		} else {
			m.notify.Failure("Could not book the appointment. Please try again.")
		}
		return err
	}

	m.notify.Success("Appointment booked.")
	return m.Refresh(ctx)
}

// Reschedule moves an appointment to a new date and 12-hour display time.
func (m *Manager) Reschedule(ctx context.Context, appointmentID, date, displayTime string) error {
	if appointmentID == "" || date == "" || displayTime == "" {
		return ErrIncompleteSelection
	}
	wireTime, err := scheduling.ConvertTo24Hour(displayTime)
	if err != nil {
		return err
	}

	_, err = m.api.Reschedule(ctx, appointmentID, models.RescheduleRequest{
		AppointmentDate: date,
		AppointmentTime: wireTime,
	})
	if err != nil {
		if IsConflict(err) {
			m.notify.Failure("That slot was just taken. Please pick another time.")
		} else {
			m.notify.Failure("Could not reschedule the appointment. Please try again.")
		}
		return err
	}

	m.notify.Success("Appointment rescheduled.")
	return m.Refresh(ctx)
}

// Cancel cancels an appointment. A blank or whitespace-only reason is
// rejected locally and never reaches the backend.
func (m *Manager) Cancel(ctx context.Context, appointmentID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrBlankReason
	}

	if err := m.api.Cancel(ctx, appointmentID, reason); err != nil {
		m.notify.Failure("Could not cancel the appointment. Please try again.")
		return err
	}

	m.notify.Success("Appointment cancelled.")
	return m.Refresh(ctx)
}
