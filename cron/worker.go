package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"carewell/config"
	appointmentRepo "carewell/database/repository/appointment"
	"carewell/models"
	"carewell/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "appointment:reminder"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// AsynqReminderScheduler enqueues reminder tasks to fire ahead of the
// appointment time. Implements appointment.ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler constructs the enqueue side of the reminder queue.
func NewReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder enqueues one reminder for the appointment, due the
// configured lead time before the appointment datetime. Appointments closer
// than the lead time get the reminder immediately.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	payload, err := json.Marshal(models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorName:    appt.DoctorName,
		FireDate:      appt.AppointmentDate,
	})
	if err != nil {
		return err
	}

	lead := time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour
	fireAt := appt.AppointmentDateTime.Add(-lead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(apptRepo appointmentRepo.AppointmentRepository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(apptRepo))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask re-reads the appointment at fire time; anything that was
// cancelled or rescheduled past this task's knowledge is skipped quietly.
func handleReminderTask(apptRepo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		appt, err := apptRepo.GetByID(ctx, p.PatientID, p.AppointmentID)
		if err != nil {
			return err
		}
		if appt == nil || appt.Status != models.AppointmentStatusUpcoming {
			logger.Debug("reminder skipped, appointment no longer upcoming",
				zap.String("appointmentID", p.AppointmentID))
			return nil
		}
		if appt.AppointmentDate != p.FireDate {
			// Rescheduled after this task was enqueued; the newer task covers it.
			return nil
		}

		logger.Info("appointment reminder due",
			zap.String("appointmentID", appt.ID),
			zap.String("patientID", appt.PatientID),
			zap.String("doctor", appt.DoctorName),
			zap.String("date", appt.AppointmentDate),
			zap.String("time", appt.AppointmentTime))
		return nil
	}
}
