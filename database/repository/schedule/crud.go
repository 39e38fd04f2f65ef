// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"carewell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetDaySchedules upserts one schedule document per day. Booked flags of
// slots already reserved are carried over so re-running setup cannot free a
// taken slot.
func (repo *mongoScheduleRepo) SetDaySchedules(ctx context.Context, doctorID string, days []models.DoctorDaySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, day := range days {
		existing, err := repo.GetDay(ctx, doctorID, day.Date)
		if err != nil {
			return err
		}

		booked := make(map[string]bool)
		if existing != nil {
			for _, s := range existing.Slots {
				if s.Booked {
					booked[s.Time] = true
				}
			}
		}

		doc := models.DoctorDaySchedule{
			DoctorID: doctorID,
			Date:     day.Date,
			Slots:    make([]models.ScheduleSlot, 0, len(day.Slots)),
		}
		for _, s := range day.Slots {
			doc.Slots = append(doc.Slots, models.ScheduleSlot{
				Time:   s.Time,
				Booked: booked[s.Time],
			})
		}

		filter := bson.M{"doctorId": doctorID, "date": day.Date}
		opts := options.Replace().SetUpsert(true)
		if _, err := repo.coll.ReplaceOne(ctx, filter, doc, opts); err != nil {
			return fmt.Errorf("failed to upsert schedule for %s: %w", day.Date, err)
		}
	}
	return nil
}

// ReserveSlot atomically flips one open slot to booked. The elemMatch filter
// only matches when the slot exists and is still free, so a lost race surfaces
// as ErrSlotUnavailable rather than a double booking.
func (repo *mongoScheduleRepo) ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"date":     date,
		"slots":    bson.M{"$elemMatch": bson.M{"time": slotTime, "booked": false}},
	}
	update := bson.M{"$set": bson.M{"slots.$.booked": true}}

	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	if res.ModifiedCount == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

// ReleaseSlot frees a previously reserved slot. Releasing an already free or
// unknown slot is a no-op.
func (repo *mongoScheduleRepo) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"date":     date,
		"slots":    bson.M{"$elemMatch": bson.M{"time": slotTime, "booked": true}},
	}
	update := bson.M{"$set": bson.M{"slots.$.booked": false}}

	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}
