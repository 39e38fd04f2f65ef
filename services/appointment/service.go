package appointment

import (
	"context"
	"strings"
	"time"

	appointmentRepo "carewell/database/repository/appointment"
	directoryRepo "carewell/database/repository/directory"
	scheduleRepo "carewell/database/repository/schedule"
	"carewell/models"
	"carewell/services/scheduling"
	"carewell/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultAppointmentService is the production lifecycle implementation.
// The schedule repository's conditional reservation is the arbiter against
// double booking; this service never trusts a client-side availability read.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	Schedule     scheduleRepo.ScheduleRepository
	Directory    directoryRepo.DirectoryRepository
	Availability scheduling.AvailabilityService
	Reminders    ReminderScheduler
	Now          func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// parseWhen validates the wire date/time pair and returns the slot key
// ("15:04") plus the combined datetime.
func parseWhen(dateStr, timeStr string) (string, time.Time, error) {
	date, err := time.Parse(utils.DateLayout, dateStr)
	if err != nil {
		return "", time.Time{}, NewValidationError("invalid appointment date %q", dateStr)
	}
	t, err := time.Parse(utils.WireTimeLayout, timeStr)
	if err != nil {
		return "", time.Time{}, NewValidationError("invalid appointment time %q", timeStr)
	}
	slotTime := t.Format(utils.SlotTimeLayout)
	when := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return slotTime, when, nil
}

func (s *DefaultAppointmentService) Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	slotTime, when, err := parseWhen(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if when.Before(s.now()) {
		return nil, NewValidationError("appointment time %s %s is in the past", req.AppointmentDate, req.AppointmentTime)
	}

	doctor, err := s.Directory.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.Active {
		return nil, NewValidationError("unknown doctor %q", req.DoctorID)
	}
	if doctor.DepartmentID != req.DepartmentID {
		return nil, NewValidationError("doctor %s does not practice in department %s", req.DoctorID, req.DepartmentID)
	}
	practices := false
	for _, b := range doctor.BranchIDs {
		if b == req.BranchID {
			practices = true
			break
		}
	}
	if !practices {
		return nil, NewValidationError("doctor %s does not practice at branch %s", req.DoctorID, req.BranchID)
	}

	branch, err := s.Directory.GetBranchByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	department, err := s.Directory.GetDepartmentByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if branch == nil || department == nil {
		return nil, NewValidationError("unknown branch or department")
	}

	// The reservation is the commit point. The client's availability read was
	// advisory only; losing the race here is a conflict, not a bug.
	if err := s.Schedule.ReserveSlot(ctx, req.DoctorID, req.AppointmentDate, slotTime); err != nil {
		if err == scheduleRepo.ErrSlotUnavailable {
			return nil, NewConflictError("slot " + slotTime + " on " + req.AppointmentDate + " is no longer available")
		}
		return nil, err
	}

	now := s.now()
	appt := &models.Appointment{
		ID:                  uuid.New().String(),
		PatientID:           patientID,
		DoctorID:            doctor.ID,
		DoctorName:          doctor.Name,
		Branch:              branch.Name,
		Department:          department.Name,
		AppointmentDate:     req.AppointmentDate,
		AppointmentTime:     req.AppointmentTime,
		AppointmentDateTime: when,
		Status:              models.AppointmentStatusUpcoming,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		// Give the slot back; the reservation must not outlive a failed insert.
		if relErr := s.Schedule.ReleaseSlot(ctx, req.DoctorID, req.AppointmentDate, slotTime); relErr != nil {
			logger.Error("failed to release slot after insert failure",
				zap.String("doctorID", req.DoctorID), zap.String("date", req.AppointmentDate), zap.Error(relErr))
		}
		return nil, err
	}

	s.invalidate(ctx, doctor.ID)
	s.scheduleReminder(ctx, appt)

	return appt, nil
}

func (s *DefaultAppointmentService) Reschedule(ctx context.Context, patientID, appointmentID string, req models.RescheduleRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	slotTime, when, err := parseWhen(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if when.Before(s.now()) {
		return nil, NewValidationError("appointment time %s %s is in the past", req.AppointmentDate, req.AppointmentTime)
	}

	appt, err := s.Repo.GetByID(ctx, patientID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, NewNotFoundError("appointment %s not found", appointmentID)
	}
	if appt.Status != models.AppointmentStatusUpcoming || appt.AppointmentDateTime.Before(s.now()) {
		return nil, NewValidationError("only upcoming appointments can be rescheduled")
	}
	if appt.AppointmentDate == req.AppointmentDate && appt.AppointmentTime == req.AppointmentTime {
		return nil, NewValidationError("appointment is already scheduled at that time")
	}

	// Reserve the new slot before touching anything else. If this loses the
	// race the appointment stays exactly where it was.
	if err := s.Schedule.ReserveSlot(ctx, appt.DoctorID, req.AppointmentDate, slotTime); err != nil {
		if err == scheduleRepo.ErrSlotUnavailable {
			return nil, NewConflictError("slot " + slotTime + " on " + req.AppointmentDate + " is no longer available")
		}
		return nil, err
	}

	set := bson.M{
		"appointmentDate":     req.AppointmentDate,
		"appointmentTime":     req.AppointmentTime,
		"appointmentDatetime": when,
	}
	if err := s.Repo.Update(ctx, appointmentID, set); err != nil {
		if relErr := s.Schedule.ReleaseSlot(ctx, appt.DoctorID, req.AppointmentDate, slotTime); relErr != nil {
			logger.Error("failed to release slot after update failure",
				zap.String("appointmentID", appointmentID), zap.Error(relErr))
		}
		return nil, err
	}

	// Free the old slot last; a failure here leaks one slot, never a booking.
	oldSlot, _, parseErr := parseWhen(appt.AppointmentDate, appt.AppointmentTime)
	if parseErr == nil {
		if err := s.Schedule.ReleaseSlot(ctx, appt.DoctorID, appt.AppointmentDate, oldSlot); err != nil {
			logger.Error("failed to release previous slot",
				zap.String("appointmentID", appointmentID), zap.Error(err))
		}
	}

	appt.AppointmentDate = req.AppointmentDate
	appt.AppointmentTime = req.AppointmentTime
	appt.AppointmentDateTime = when

	s.invalidate(ctx, appt.DoctorID)
	s.scheduleReminder(ctx, appt)

	return appt, nil
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, patientID, appointmentID, reason string) error {
	logger := utils.GetLogger()

	if strings.TrimSpace(reason) == "" {
		return NewValidationError("a cancellation reason is required")
	}

	appt, err := s.Repo.GetByID(ctx, patientID, appointmentID)
	if err != nil {
		return err
	}
	if appt == nil {
		return NewNotFoundError("appointment %s not found", appointmentID)
	}
	if appt.Status != models.AppointmentStatusUpcoming {
		return NewValidationError("only upcoming appointments can be cancelled")
	}

	set := bson.M{
		"status":             models.AppointmentStatusCancelled,
		"cancellationReason": strings.TrimSpace(reason),
	}
	if err := s.Repo.Update(ctx, appointmentID, set); err != nil {
		return err
	}

	if slotTime, _, parseErr := parseWhen(appt.AppointmentDate, appt.AppointmentTime); parseErr == nil {
		if err := s.Schedule.ReleaseSlot(ctx, appt.DoctorID, appt.AppointmentDate, slotTime); err != nil {
			logger.Error("failed to release slot on cancellation",
				zap.String("appointmentID", appointmentID), zap.Error(err))
		}
	}

	s.invalidate(ctx, appt.DoctorID)
	return nil
}

func (s *DefaultAppointmentService) Stats(ctx context.Context, patientID string) (*models.AppointmentStats, error) {
	return s.Repo.CountStats(ctx, patientID, s.now())
}

func (s *DefaultAppointmentService) Upcoming(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.Repo.ListUpcoming(ctx, patientID, s.now())
}

func (s *DefaultAppointmentService) Past(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.Repo.ListPast(ctx, patientID, s.now())
}

func (s *DefaultAppointmentService) invalidate(ctx context.Context, doctorID string) {
	if s.Availability != nil {
		s.Availability.InvalidateDoctor(ctx, doctorID)
	}
}

func (s *DefaultAppointmentService) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
