// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"

	"carewell/database"
	"carewell/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrSlotUnavailable is returned when a reservation finds the slot missing or
// already booked. Callers treat it as a recoverable conflict.
var ErrSlotUnavailable = errors.New("slot is not available")

type ScheduleRepository interface {
	SetDaySchedules(ctx context.Context, doctorID string, days []models.DoctorDaySchedule) error
	GetRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DoctorDaySchedule, error)
	GetDay(ctx context.Context, doctorID, date string) (*models.DoctorDaySchedule, error)
	ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error
	ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	repo := &mongoScheduleRepo{
		coll: database.DB().Collection("schedules"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to create schedule indexes", zap.Error(err))
	}
	return repo
}
