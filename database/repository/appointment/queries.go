// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"carewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upcomingFilter matches appointments the portal shows on the upcoming tab:
// still marked upcoming and not yet in the past.
func upcomingFilter(patientID string, now time.Time) bson.M {
	return bson.M{
		"patientId":           patientID,
		"status":              models.AppointmentStatusUpcoming,
		"appointmentDatetime": bson.M{"$gte": now},
	}
}

// pastFilter matches cancelled appointments plus anything whose time has
// passed, whatever its stored status.
func pastFilter(patientID string, now time.Time) bson.M {
	return bson.M{
		"patientId": patientID,
		"$or": []bson.M{
			{"status": models.AppointmentStatusCancelled},
			{"appointmentDatetime": bson.M{"$lt": now}},
		},
	}
}

func (repo *mongoAppointmentRepo) ListUpcoming(ctx context.Context, patientID string, now time.Time) ([]models.Appointment, error) {
	return repo.list(ctx, upcomingFilter(patientID, now), 1)
}

func (repo *mongoAppointmentRepo) ListPast(ctx context.Context, patientID string, now time.Time) ([]models.Appointment, error) {
	return repo.list(ctx, pastFilter(patientID, now), -1)
}

func (repo *mongoAppointmentRepo) list(ctx context.Context, filter bson.M, sortDir int) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointmentDatetime", Value: sortDir}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *mongoAppointmentRepo) CountStats(ctx context.Context, patientID string, now time.Time) (*models.AppointmentStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	upcoming, err := repo.coll.CountDocuments(ctx, upcomingFilter(patientID, now))
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming appointments: %w", err)
	}
	past, err := repo.coll.CountDocuments(ctx, pastFilter(patientID, now))
	if err != nil {
		return nil, fmt.Errorf("failed to count past appointments: %w", err)
	}

	return &models.AppointmentStats{
		Upcoming: int(upcoming),
		Past:     int(past),
	}, nil
}
