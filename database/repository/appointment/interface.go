// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"carewell/database"
	"carewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error)
	Update(ctx context.Context, appointmentID string, set bson.M) error
	ListUpcoming(ctx context.Context, patientID string, now time.Time) ([]models.Appointment, error)
	ListPast(ctx context.Context, patientID string, now time.Time) ([]models.Appointment, error)
	CountStats(ctx context.Context, patientID string, now time.Time) (*models.AppointmentStats, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}
