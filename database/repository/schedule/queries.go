// File: database/repository/schedule/queries.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"carewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *mongoScheduleRepo) GetRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DoctorDaySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"date":     bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var days []models.DoctorDaySchedule
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("error decoding schedules: %w", err)
	}
	return days, nil
}

func (repo *mongoScheduleRepo) GetDay(ctx context.Context, doctorID, date string) (*models.DoctorDaySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "date": date}

	var day models.DoctorDaySchedule
	err := repo.coll.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &day, nil
}
